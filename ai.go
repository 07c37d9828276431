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
	"sort"

	"github.com/pkg/errors"
)

// AI chooses the next direction for the play command.
// Implementations never choose the reverse of the current direction.
type AI interface {
	NextDirection(s Snapshot) Direction
	Name() string
}

// GetAI returns the AI with the given name.
func GetAI(name string, r Rand) (AI, error) {
	switch name {
	case "greedy":
		return GreedyAI{}, nil
	case "random":
		if r == nil {
			return nil, errors.New("random ai needs a source of randomness")
		}
		return &RandomAI{rand: r}, nil
	}
	return nil, errors.Errorf("unknown ai %q", name)
}

// AINames lists the names accepted by GetAI.
var AINames = []string{"greedy", "random"}

// safeDirections returns all directions that keep the head on the field,
// excluding the reverse of the current direction.
func safeDirections(s Snapshot) []Direction {
	h := s.Head()
	result := make([]Direction, 0, 3)
	for _, d := range Directions {
		if d == s.Direction.Opposite() {
			continue
		}
		dx, dy := d.Delta()
		if (Cell{h.X + dx, h.Y + dy}).Inside() {
			result = append(result, d)
		}
	}
	return result
}

// GreedyAI moves towards the food along the shortest manhattan distance.
type GreedyAI struct{}

// NextDirection implements AI.
func (GreedyAI) NextDirection(s Snapshot) Direction {
	safe := safeDirections(s)
	if len(safe) == 0 {
		return s.Direction
	}
	h := s.Head()
	distance := func(d Direction) int {
		dx, dy := d.Delta()
		return abs(h.X+dx-s.Food.X) + abs(h.Y+dy-s.Food.Y)
	}
	sort.SliceStable(safe, func(i, j int) bool {
		di, dj := distance(safe[i]), distance(safe[j])
		if di != dj {
			return di < dj
		}
		// Ties keep the current direction.
		return safe[i] == s.Direction && safe[j] != s.Direction
	})
	return safe[0]
}

// Name implements AI.
func (GreedyAI) Name() string {
	return "greedy"
}

// RandomAI picks a random direction that stays on the field.
type RandomAI struct {
	rand Rand
}

// NextDirection implements AI.
func (r *RandomAI) NextDirection(s Snapshot) Direction {
	safe := safeDirections(s)
	if len(safe) == 0 {
		return s.Direction
	}
	return safe[r.rand.Intn(len(safe))]
}

// Name implements AI.
func (r *RandomAI) Name() string {
	return "random"
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
