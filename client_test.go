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
	"math/rand"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// leftAI always asks for left. Starting to the right, the server ignores it
// and the snake runs into the right wall.
type leftAI struct{}

func (leftAI) NextDirection(s Snapshot) Direction { return DirectionLeft }
func (leftAI) Name() string                      { return "left" }

func newPlayServer(t *testing.T) (*Client, *SharedGame) {
	t.Helper()
	game := NewSharedGame(NewGame(rand.New(rand.NewSource(4))), nil)
	server, err := NewServer(game)
	require.NoError(t, err)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return &Client{Endpoint: ts.URL + "/", HTTP: ts.Client()}, game
}

func TestClient(t *testing.T) {
	c, game := newPlayServer(t)
	ctx := context.Background()

	body, err := c.New(ctx)
	require.NoError(t, err)
	require.Equal(t, []Cell{{5, 5}, {5, 6}, {5, 7}}, body)

	resp, err := c.Move(ctx, DirectionDown)
	require.NoError(t, err)
	require.Equal(t, game.Snapshot().Body, resp.Body)

	s, err := c.State(ctx)
	require.NoError(t, err)
	require.Equal(t, game.Snapshot(), s)

	_, err = c.Move(ctx, Direction("sideways"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "400")
	require.Contains(t, err.Error(), "Invalid direction")
}

func TestPlayGreedy(t *testing.T) {
	c, game := newPlayServer(t)
	ui := new(recordUI)

	last, err := play(context.Background(), c, GreedyAI{}, 50, ui)
	require.NoError(t, err)
	require.False(t, last.GameOver)

	server := game.Snapshot()
	require.Equal(t, server.Body, last.Body)
	require.Equal(t, server.Food, last.Food)
	require.Equal(t, server.Direction, last.Direction)
	require.Equal(t, 50, server.Steps)
	require.Equal(t, 50, last.Steps)
	require.Len(t, ui.games, 1)
	require.Len(t, ui.steps, 50)
}

func TestPlayUntilGameOver(t *testing.T) {
	c, game := newPlayServer(t)

	last, err := play(context.Background(), c, leftAI{}, 0, quietUI{})
	require.NoError(t, err)
	require.True(t, last.GameOver)
	require.Equal(t, game.Snapshot().Body, last.Body)
	require.Equal(t, FieldWidth-1, last.Head().X)
	require.Equal(t, DirectionRight, last.Direction)
}

func TestPlayCancelled(t *testing.T) {
	c, _ := newPlayServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := play(ctx, c, GreedyAI{}, 10, quietUI{})
	require.Error(t, err)
}
