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
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// FieldWidth contains the width of the field.
	FieldWidth = 40
	// FieldHeight contains the height of the field.
	FieldHeight = 20
)

// Cell is a single coordinate of the field.
// It is transmitted as a [x, y] pair.
type Cell struct {
	X int
	Y int
}

// Inside reports whether the cell lies on the field.
func (c Cell) Inside() bool {
	return c.X >= 0 && c.X < FieldWidth && c.Y >= 0 && c.Y < FieldHeight
}

// MarshalJSON encodes the cell as a [x, y] pair.
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.X, c.Y})
}

// UnmarshalJSON decodes a [x, y] pair.
func (c *Cell) UnmarshalJSON(b []byte) error {
	var p [2]int
	if err := json.Unmarshal(b, &p); err != nil {
		return errors.Wrap(err, "decode cell failed")
	}
	c.X, c.Y = p[0], p[1]
	return nil
}

// Rand is the source of randomness used for food placement.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Game represents the running game. It is not safe for concurrent use,
// see SharedGame for the locked version.
type Game struct {
	Snake *Snake
	Food  Cell
	ID    uuid.UUID
	Steps int

	rand Rand
}

// NewGame creates a game and resets it.
func NewGame(r Rand) *Game {
	g := &Game{rand: r}
	g.Reset()
	return g
}

// Reset starts a new game. Food never starts on the snake.
func (g *Game) Reset() Snapshot {
	g.Snake = newSnake()
	g.ID = uuid.New()
	g.Steps = 0
	g.Food = g.freeCell()
	return g.Snapshot()
}

// SetDirection changes the facing of the snake. Reversals, repeats
// and changes after the game is over are ignored.
func (g *Game) SetDirection(d Direction) {
	if g.Over() {
		return
	}
	g.Snake.changeDirection(d)
}

// Step advances the game by one cell. Once the game is over, Step does nothing.
func (g *Game) Step() Snapshot {
	if g.Over() {
		return g.Snapshot()
	}

	// Food re-rolled after eating may land below the head.
	g.eat()

	if g.Snake.moveForward() {
		g.Steps++
		g.eat()
	}
	return g.Snapshot()
}

// Over reports whether the snake tried to leave the field.
func (g *Game) Over() bool {
	return g.Snake.Invalid
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	body := make([]Cell, len(g.Snake.Body))
	copy(body, g.Snake.Body)
	return Snapshot{
		ID:        g.ID.String(),
		Body:      body,
		Food:      g.Food,
		Direction: g.Snake.Direction,
		Steps:     g.Steps,
		GameOver:  g.Snake.Invalid,
	}
}

// eat grows the snake if its head is on the food. The new food may land anywhere,
// including on the snake.
func (g *Game) eat() bool {
	if g.Snake.head() != g.Food {
		return false
	}
	g.Snake.grow()
	g.Food = g.randomCell()
	return true
}

func (g *Game) randomCell() Cell {
	return Cell{g.rand.Intn(FieldWidth), g.rand.Intn(FieldHeight)}
}

func (g *Game) freeCell() Cell {
	for {
		c := g.randomCell()
		if !g.Snake.occupies(c) {
			return c
		}
	}
}

// Snapshot is a copy of the game state at one point in time.
type Snapshot struct {
	ID        string    `json:"id"`
	Body      []Cell    `json:"body"`
	Food      Cell      `json:"food"`
	Direction Direction `json:"direction"`
	Steps     int       `json:"steps"`
	GameOver  bool      `json:"game_over"`
}

// Head returns the head of the snake.
func (s Snapshot) Head() Cell {
	return s.Body[len(s.Body)-1]
}

// MoveResponse is the answer to a move request.
type MoveResponse struct {
	Body     []Cell `json:"body"`
	Food     Cell   `json:"food"`
	GameOver bool   `json:"game_over"`
}

func newMoveResponse(s Snapshot) MoveResponse {
	return MoveResponse{
		Body:     s.Body,
		Food:     s.Food,
		GameOver: s.GameOver,
	}
}
