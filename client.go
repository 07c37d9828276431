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
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Client talks to a running snake server.
type Client struct {
	Endpoint string
	HTTP     *http.Client
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func (c *Client) do(ctx context.Context, method, path string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimSuffix(c.Endpoint, "/")+path, nil)
	if err != nil {
		return errors.Wrap(err, "create request failed")
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s failed", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errors.Errorf("%s %s failed: %s: %s", method, path, resp.Status, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrapf(err, "decode %s response failed", path)
	}
	return nil
}

// New starts a new game and returns the body of the snake.
func (c *Client) New(ctx context.Context) ([]Cell, error) {
	var body []Cell
	err := c.do(ctx, http.MethodPost, "/new", &body)
	return body, err
}

// Move sends a move request.
func (c *Client) Move(ctx context.Context, d Direction) (MoveResponse, error) {
	var resp MoveResponse
	err := c.do(ctx, http.MethodPost, "/move/"+string(d), &resp)
	return resp, err
}

// State returns the current snapshot.
func (c *Client) State(ctx context.Context) (Snapshot, error) {
	var s Snapshot
	err := c.do(ctx, http.MethodGet, "/state", &s)
	return s, err
}

// play starts a new game and lets ai play until the game is over,
// maxSteps moves were sent or ctx is done. maxSteps <= 0 means no limit.
func play(ctx context.Context, c *Client, ai AI, maxSteps int, ui UI) (Snapshot, error) {
	if _, err := c.New(ctx); err != nil {
		return Snapshot{}, errors.Wrap(err, "new game failed")
	}
	s, err := c.State(ctx)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "get state failed")
	}
	ui.NewGame(s)

	for i := 0; maxSteps <= 0 || i < maxSteps; i++ {
		if s.GameOver || ctx.Err() != nil {
			break
		}
		d := ai.NextDirection(s)
		resp, err := c.Move(ctx, d)
		if err != nil {
			return s, errors.Wrap(err, "move failed")
		}
		if d != s.Direction.Opposite() {
			s.Direction = d
		}
		if !resp.GameOver {
			s.Steps++
		}
		s.Body = resp.Body
		s.Food = resp.Food
		s.GameOver = resp.GameOver
		ui.NewStep(s)
	}
	return s, nil
}
