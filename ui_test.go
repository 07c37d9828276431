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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func overSnapshot() Snapshot {
	g := newTestGame()
	g.Snake.Body = []Cell{{37, 5}, {38, 5}, {39, 5}}
	return g.Step()
}

func TestPrintGame(t *testing.T) {
	s := newTestGame(10, 10).Snapshot()
	lines := strings.Split(s.PrintGame(false), "\n")
	require.Len(t, lines, FieldHeight)
	for _, l := range lines {
		require.Equal(t, FieldWidth, utf8.RuneCountInString(l))
	}

	require.Equal(t, '●', []rune(lines[5])[5])
	require.Equal(t, '●', []rune(lines[6])[5])
	require.Equal(t, '⮊', []rune(lines[7])[5])
	require.Equal(t, '◆', []rune(lines[10])[10])
	require.Equal(t, '·', []rune(lines[0])[0])

	over := overSnapshot()
	require.Equal(t, '×', []rune(strings.Split(over.String(), "\n")[5])[39])

	require.Contains(t, s.PrintGame(true), colourReset)
}

func TestCmdUI(t *testing.T) {
	var buf bytes.Buffer
	ui := cmdUI{Out: &buf}
	require.NoError(t, ui.Initialise())

	s := newTestGame().Snapshot()
	ui.NewGame(s)
	ui.NewStep(s)
	require.NoError(t, ui.Finish(overSnapshot()))
	ui.Wait()

	out := buf.String()
	require.Contains(t, out, "Waiting for game")
	require.Contains(t, out, "New game")
	require.Contains(t, out, s.ID)
	require.Contains(t, out, "length: 3")
	require.Contains(t, out, "Game over! (length 3 / 0 steps)")
}

func TestTeeUI(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tee.txt")
	inner := new(recordUI)
	ui := &teeUI{File: file, UI: inner}
	require.NoError(t, ui.Initialise())
	require.Error(t, ui.Initialise())

	g := newTestGame()
	ui.NewGame(g.Snapshot())
	ui.NewStep(g.Step())
	require.NoError(t, ui.Finish(g.Snapshot()))

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	out := string(b)
	require.Contains(t, out, "New game "+g.ID.String())
	require.Contains(t, out, g.Snapshot().PrintGame(false))
	require.Contains(t, out, "steps: 1")
	require.True(t, strings.HasSuffix(out, "Stopped. (3 / 1)"))

	require.Len(t, inner.games, 1)
	require.Len(t, inner.steps, 1)
}

func TestDumpUI(t *testing.T) {
	file := filepath.Join(t.TempDir(), "dump.gob")
	ui := &dumpUI{File: file, UI: quietUI{}}
	require.NoError(t, ui.Initialise())

	g := newTestGame()
	want := []Snapshot{g.Snapshot()}
	ui.NewGame(want[0])
	for _, d := range []Direction{DirectionUp, DirectionLeft} {
		g.SetDirection(d)
		s := g.Step()
		want = append(want, s)
		ui.NewStep(s)
	}
	require.NoError(t, ui.Finish(g.Snapshot()))

	got, err := readDump(file)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDumpUIWithoutSnapshots(t *testing.T) {
	file := filepath.Join(t.TempDir(), "dump.gob")
	ui := &dumpUI{File: file}
	require.NoError(t, ui.Initialise())
	require.NoError(t, ui.Finish(Snapshot{}))

	_, err := os.Stat(file)
	require.True(t, os.IsNotExist(err))
}

func TestPrintWinUI(t *testing.T) {
	file := filepath.Join(t.TempDir(), "outcome.txt")
	ui := &printWinUI{File: file, UI: quietUI{}}
	require.NoError(t, ui.Initialise())
	require.NoError(t, ui.Finish(overSnapshot()))

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, "Game over! (length 3 / 0 steps)\n", string(b))

	require.NoError(t, ui.Finish(newTestGame().Snapshot()))
	b, err = os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, "Stopped! (length 3 / 0 steps)\n", string(b))
}

func TestBuildUI(t *testing.T) {
	ui := buildUI(quietUI{}, "", "", "")
	require.Equal(t, quietUI{}, ui)

	ui = buildUI(quietUI{}, "a", "b", "c")
	p, ok := ui.(*printWinUI)
	require.True(t, ok)
	d, ok := p.UI.(*dumpUI)
	require.True(t, ok)
	tee, ok := d.UI.(*teeUI)
	require.True(t, ok)
	require.Equal(t, quietUI{}, tee.UI)
}
