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
	"github.com/pkg/errors"
)

// Direction is the facing of the snake.
// The string value is the token used by the HTTP interface.
type Direction string

const (
	// DirectionUp contains the value representing "up"
	DirectionUp Direction = "up"
	// DirectionDown contains the value representing "down"
	DirectionDown Direction = "down"
	// DirectionLeft contains the value representing "left"
	DirectionLeft Direction = "left"
	// DirectionRight contains the value representing "right"
	DirectionRight Direction = "right"
)

// Directions lists all valid directions.
var Directions = []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight}

var errInvalidDirection = errors.New("invalid direction")

// ParseDirection converts a direction token into a Direction.
// Unknown tokens return an error wrapping errInvalidDirection.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight:
		return d, nil
	}
	return "", errors.Wrapf(errInvalidDirection, "parse %q failed", s)
}

// Delta returns the unit vector of the direction.
// y grows downwards.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirectionUp:
		return 0, -1
	case DirectionDown:
		return 0, 1
	case DirectionLeft:
		return -1, 0
	case DirectionRight:
		return 1, 0
	}
	return 0, 0
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionUp:
		return DirectionDown
	case DirectionDown:
		return DirectionUp
	case DirectionLeft:
		return DirectionRight
	case DirectionRight:
		return DirectionLeft
	}
	return d
}

// Snake represents the player of the game.
// The head is the last element of Body, the tail the first.
type Snake struct {
	Body      []Cell
	Direction Direction
	Invalid   bool
}

func newSnake() *Snake {
	return &Snake{
		Body:      []Cell{{5, 5}, {5, 6}, {5, 7}},
		Direction: DirectionRight,
		Invalid:   false,
	}
}

func (s *Snake) head() Cell {
	if len(s.Body) == 0 {
		panic("snake without body")
	}
	return s.Body[len(s.Body)-1]
}

// changeDirection ignores reversals and repeats of the current direction.
func (s *Snake) changeDirection(d Direction) {
	if d == s.Direction || d == s.Direction.Opposite() {
		return
	}
	s.Direction = d
}

// moveForward moves the snake one cell. If the move would leave the field,
// the snake stays where it is and gets invalidated.
func (s *Snake) moveForward() bool {
	h := s.head()
	dx, dy := s.Direction.Delta()
	next := Cell{h.X + dx, h.Y + dy}
	if !next.Inside() {
		s.Invalid = true
		return false
	}
	s.Body = append(s.Body[1:], next)
	return true
}

// grow adds a segment behind the tail, opposite to the current facing.
// Turns along the body are not taken into account.
func (s *Snake) grow() {
	dx, dy := s.Direction.Delta()
	t := s.Body[0]
	s.Body = append([]Cell{{t.X - dx, t.Y - dy}}, s.Body...)
}

func (s *Snake) occupies(c Cell) bool {
	for i := range s.Body {
		if s.Body[i] == c {
			return true
		}
	}
	return false
}
