// SPDX-License-Identifier: Apache-2.0
// Copyright 2020,2021 Marcus Soll
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	  http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// SharedGame guards a Game with a mutex.
// The UI is informed while the lock is held, so it sees every state in order.
type SharedGame struct {
	mu   sync.Mutex
	game *Game
	ui   UI
}

// NewSharedGame wraps g. ui may be nil.
func NewSharedGame(g *Game, ui UI) *SharedGame {
	if ui == nil {
		ui = quietUI{}
	}
	return &SharedGame{game: g, ui: ui}
}

// Reset starts a new game.
func (sg *SharedGame) Reset() Snapshot {
	sg.mu.Lock()
	defer sg.mu.Unlock()
	s := sg.game.Reset()
	sg.ui.NewGame(s)
	return s
}

// Move changes the direction and advances the game by one step.
// ate reports whether the snake grew.
func (sg *SharedGame) Move(d Direction) (s Snapshot, ate bool) {
	sg.mu.Lock()
	defer sg.mu.Unlock()
	before := len(sg.game.Snake.Body)
	sg.game.SetDirection(d)
	s = sg.game.Step()
	sg.ui.NewStep(s)
	return s, len(s.Body) > before
}

// Snapshot returns the current state.
func (sg *SharedGame) Snapshot() Snapshot {
	sg.mu.Lock()
	defer sg.mu.Unlock()
	return sg.game.Snapshot()
}

// Server exposes a SharedGame over HTTP.
type Server struct {
	game *SharedGame
	hub  *hub
}

// Cfg configures a Server.
type Cfg func(*Server) error

// WithHub serves watchers of h on /watch.
func WithHub(h *hub) Cfg {
	return func(s *Server) error {
		if h == nil {
			return errors.New("hub must not be nil")
		}
		s.hub = h
		return nil
	}
}

// NewServer creates a new Server for game.
func NewServer(game *SharedGame, cfgs ...Cfg) (*Server, error) {
	if game == nil {
		return nil, errors.New("game must not be nil")
	}
	s := &Server{game: game}
	for _, cfg := range cfgs {
		if err := cfg(s); err != nil {
			return nil, errors.Wrap(err, "apply Server cfg failed")
		}
	}
	return s, nil
}

// Handler returns the routes of the server wrapped in the CORS policy.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/new", s.handleNew).Methods(http.MethodPost)
	r.HandleFunc("/move/{direction}", s.handleMove).Methods(http.MethodPost)
	r.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	if s.hub != nil {
		r.Handle("/watch", s.hub).Methods(http.MethodGet)
	}

	// gorilla/handlers caps the max age at 10 minutes.
	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Authorization", "Accept"}),
		handlers.MaxAge(3600),
	)(r)
}

// Run serves on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithField("addr", addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "listen failed")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return errors.Wrap(srv.Shutdown(shutdownCtx), "shutdown failed")
	})
	return g.Wait()
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	snapshot := s.game.Reset()
	logger.WithFields(snapshotFields(snapshot)).Info("new game")
	writeJSON(w, snapshot.Body)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["direction"]
	d, err := ParseDirection(token)
	if err != nil {
		logger.WithError(err).Warn("rejected move")
		http.Error(w, "Invalid direction", http.StatusBadRequest)
		return
	}

	snapshot, ate := s.game.Move(d)
	fields := snapshotFields(snapshot)
	logger.WithFields(fields).WithField("requested", d).Debug("move")
	if ate {
		logger.WithFields(fields).Info("snake ate food")
	}
	writeJSON(w, newMoveResponse(snapshot))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.game.Snapshot())
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.WithError(err).Error("encode response failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}
