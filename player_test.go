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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	for _, token := range []string{"up", "down", "left", "right"} {
		d, err := ParseDirection(token)
		require.NoError(t, err)
		require.Equal(t, Direction(token), d)
	}

	for _, token := range []string{"", "Up", "north", "left "} {
		_, err := ParseDirection(token)
		require.Error(t, err)
		require.True(t, errors.Is(err, errInvalidDirection), "token %q", token)
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range Directions {
		require.NotEqual(t, d, d.Opposite())
		require.Equal(t, d, d.Opposite().Opposite())

		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		require.Equal(t, -dx, ox)
		require.Equal(t, -dy, oy)
		require.Equal(t, 1, abs(dx)+abs(dy))
	}
}

func TestGrowUsesFacing(t *testing.T) {
	tests := []struct {
		direction Direction
		tail      Cell
	}{
		{DirectionUp, Cell{5, 6}},
		{DirectionDown, Cell{5, 4}},
		{DirectionLeft, Cell{6, 5}},
		{DirectionRight, Cell{4, 5}},
	}

	for _, tt := range tests {
		s := newSnake()
		s.Direction = tt.direction
		s.grow()
		require.Len(t, s.Body, 4)
		require.Equal(t, tt.tail, s.Body[0], "direction %s", tt.direction)
		require.Equal(t, Cell{5, 7}, s.head())
	}
}

func TestGrowOffField(t *testing.T) {
	s := &Snake{Body: []Cell{{0, 3}, {1, 3}}, Direction: DirectionRight}
	s.grow()
	require.Equal(t, Cell{-1, 3}, s.Body[0])
}
