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
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	watcherBuffer = 16
	writeWait     = 5 * time.Second
)

// hub pushes every snapshot to all connected websocket watchers.
// It is an UI, so it can be chained with the other UIs.
type hub struct {
	UI UI

	upgrader websocket.Upgrader

	mu       sync.Mutex
	watchers map[*watcher]struct{}
	last     *Snapshot
	closed   bool
}

type watcher struct {
	conn *websocket.Conn
	send chan Snapshot
}

func newHub(ui UI) *hub {
	return &hub{
		UI: ui,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		watchers: make(map[*watcher]struct{}),
	}
}

func (h *hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithError(err).Warn("websocket upgrade failed")
		return
	}

	wa := &watcher{conn: conn, send: make(chan Snapshot, watcherBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	if h.last != nil {
		wa.send <- *h.last
	}
	h.watchers[wa] = struct{}{}
	count := len(h.watchers)
	h.mu.Unlock()

	logger.WithField("watchers", count).Info("watcher connected")

	go wa.writeLoop()

	// Watchers only listen. Reading is needed to notice the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(wa)
}

func (wa *watcher) writeLoop() {
	for s := range wa.send {
		wa.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := wa.conn.WriteJSON(s); err != nil {
			logger.WithError(err).Debug("write to watcher failed")
			wa.conn.Close()
			break
		}
	}
	// Drain so remove never blocks on a dead watcher.
	for range wa.send {
	}
}

func (h *hub) remove(wa *watcher) {
	h.mu.Lock()
	_, ok := h.watchers[wa]
	delete(h.watchers, wa)
	count := len(h.watchers)
	h.mu.Unlock()

	if ok {
		close(wa.send)
		wa.conn.Close()
		logger.WithField("watchers", count).Info("watcher disconnected")
	}
}

func (h *hub) publish(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = &s
	for wa := range h.watchers {
		select {
		case wa.send <- s:
		default:
			logger.Debug("watcher too slow, dropping snapshot")
		}
	}
}

// Watchers returns the number of connected watchers.
func (h *hub) Watchers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.watchers)
}

func (h *hub) Initialise() error {
	if h.UI != nil {
		return h.UI.Initialise()
	}
	return nil
}

func (h *hub) NewGame(s Snapshot) {
	h.publish(s)
	if h.UI != nil {
		h.UI.NewGame(s)
	}
}

func (h *hub) NewStep(s Snapshot) {
	h.publish(s)
	if h.UI != nil {
		h.UI.NewStep(s)
	}
}

// Finish disconnects all watchers.
func (h *hub) Finish(last Snapshot) error {
	h.mu.Lock()
	h.closed = true
	conns := make([]*websocket.Conn, 0, len(h.watchers))
	for wa := range h.watchers {
		conns = append(conns, wa.conn)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopped"), time.Now().Add(writeWait))
		c.Close()
	}

	if h.UI != nil {
		return h.UI.Finish(last)
	}
	return nil
}

func (h *hub) Wait() {
	if h.UI != nil {
		h.UI.Wait()
	}
}
