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
	"fmt"
	"strings"
)

var colours = []string{"\033[39m", "\033[31m", "\033[32m", "\033[33m", "\033[34m", "\033[35m", "\033[36m"}
var colourReset = "\033[0m"

// The UI interface allows the usage of different UIs in sn_ake.
// Implementations get copies of the game state and may keep them.
type UI interface {
	Initialise() error
	NewGame(s Snapshot)
	NewStep(s Snapshot)
	Finish(last Snapshot) error
	Wait()
}

type quietUI struct{}

func (q quietUI) Initialise() error          { return nil }
func (q quietUI) NewGame(s Snapshot)         {}
func (q quietUI) NewStep(s Snapshot)         {}
func (q quietUI) Finish(last Snapshot) error { return nil }
func (q quietUI) Wait()                      {}

func (s Snapshot) String() string {
	return s.PrintGame(false)
}

// PrintGame returns a string representation of the field.
func (s Snapshot) PrintGame(colour bool) string {
	var sb strings.Builder
	for y := 0; y < FieldHeight; y++ {
		for x := 0; x < FieldWidth; x++ {
			r, c := s.runeAt(x, y)
			if colour {
				sb.WriteString(colours[c])
			}
			sb.WriteRune(r)
			if colour {
				sb.WriteString(colourReset)
			}
		}
		if y < FieldHeight-1 {
			sb.WriteRune('\n')
		}
	}

	return sb.String()
}

// runeAt returns the rune and the colour index of a cell.
func (s Snapshot) runeAt(x, y int) (rune, int) {
	c := Cell{x, y}
	if len(s.Body) > 0 && s.Head() == c {
		if s.GameOver {
			return '×', 1
		}
		switch s.Direction {
		case DirectionUp:
			return '⮉', 3
		case DirectionRight:
			return '⮊', 3
		case DirectionDown:
			return '⮋', 3
		case DirectionLeft:
			return '⮈', 3
		}
	}
	for i := range s.Body {
		if s.Body[i] == c {
			return '●', 2
		}
	}
	if s.Food == c {
		return '◆', 1
	}
	return '·', 0
}

func buildGameOverviewStrings(s Snapshot, index, total int) []string {
	ss := make([]string, 0, 8)
	if total > 0 {
		ss = append(ss, fmt.Sprintf("game state %d/%d", index, total))
	} else {
		ss = append(ss, fmt.Sprintf("game state %d", index))
	}
	ss = append(ss, fmt.Sprintf("game: %s", s.ID))
	ss = append(ss, fmt.Sprintf("size: %d x %d", FieldWidth, FieldHeight))
	ss = append(ss, fmt.Sprintf("length: %d", len(s.Body)))
	ss = append(ss, fmt.Sprintf("steps: %d", s.Steps))
	ss = append(ss, fmt.Sprintf("direction: %s", s.Direction))
	ss = append(ss, fmt.Sprintf("food: %d,%d", s.Food.X, s.Food.Y))
	ss = append(ss, fmt.Sprintf("game over: %t", s.GameOver))
	return ss
}
