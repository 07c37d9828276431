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
	"fmt"

	"github.com/gdamore/tcell"
	"github.com/pkg/errors"
)

// terminalUI shows the field in the terminal. The history can be browsed
// with the arrow keys, q closes the UI.
type terminalUI struct {
	// Quit is called when the user closes the UI. May be nil.
	Quit context.CancelFunc

	screen          tcell.Screen
	snapshots       []Snapshot
	snapshotIndex   int
	colors          map[int]tcell.Color
	ctx             context.Context
	done            context.CancelFunc
	newData         chan Snapshot
	running         chan bool
	positionRunning int
}

func (tui *terminalUI) Initialise() error {
	var err error

	tui.newData = make(chan Snapshot, 64)
	tui.running = make(chan bool, 5)
	tui.ctx, tui.done = context.WithCancel(context.Background())

	tui.screen, err = tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen failed")
	}

	err = tui.screen.Init()
	if err != nil {
		return errors.Wrap(err, "init screen failed")
	}

	tui.colors = map[int]tcell.Color{
		0: tcell.ColorGray,
		1: tcell.NewRGBColor(178, 24, 24),
		2: tcell.NewRGBColor(24, 178, 24),
		3: tcell.NewRGBColor(178, 104, 24),
	}

	tui.drawString(0, 0, "Waiting for game")
	tui.positionRunning = FieldWidth + 2 + 30
	tui.drawString(tui.positionRunning, 0, "running")
	tui.screen.Show()

	go tui.mainLoop()

	return nil
}

func (tui *terminalUI) NewGame(s Snapshot) {
	tui.push(s)
}

func (tui *terminalUI) NewStep(s Snapshot) {
	tui.push(s)
}

func (tui *terminalUI) push(s Snapshot) {
	select {
	case tui.newData <- s:
	default:
	}
}

func (tui *terminalUI) Finish(last Snapshot) error {
	select {
	case tui.running <- false:
	default:
	}
	return nil
}

func (tui *terminalUI) Wait() {
	<-tui.ctx.Done()
}

func (tui *terminalUI) drawString(x, y int, v string) {
	for i, r := range []rune(v) {
		tui.screen.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}

func (tui *terminalUI) drawSnapshot() {
	s := tui.snapshots[tui.snapshotIndex]

	for y := 0; y < FieldHeight; y++ {
		for x := 0; x < FieldWidth; x++ {
			r, c := s.runeAt(x, y)
			tui.screen.SetContent(x, y, r, nil, tcell.StyleDefault.Foreground(tui.colors[c]))
		}
	}
	ss := buildGameOverviewStrings(s, tui.snapshotIndex+1, len(tui.snapshots))
	ox := FieldWidth + 2
	for i, line := range ss {
		if i == 0 {
			tui.drawString(ox, i, fmt.Sprintf("%-30s", line))
		} else {
			tui.drawString(ox, i, fmt.Sprintf("%-60s", line))
		}
	}
	tui.screen.Show()
}

func (tui *terminalUI) mainLoop() {
	running := true
	ec := make(chan tcell.Event)
	go func() {
		for {
			e := tui.screen.PollEvent()
			if e == nil {
				return
			}
			ec <- e
		}
	}()

	for {
		select {
		case e := <-ec:
			switch ev := e.(type) {
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyHome:
					if len(tui.snapshots) > 0 {
						tui.snapshotIndex = 0
						tui.drawSnapshot()
					}
				case tcell.KeyEnd:
					if len(tui.snapshots) > 0 {
						tui.snapshotIndex = len(tui.snapshots) - 1
						tui.drawSnapshot()
					}
				case tcell.KeyLeft:
					if tui.snapshotIndex > 0 {
						tui.snapshotIndex--
						tui.drawSnapshot()
					}
				case tcell.KeyRight:
					if tui.snapshotIndex < len(tui.snapshots)-1 {
						tui.snapshotIndex++
						tui.drawSnapshot()
					}
				case tcell.KeyRune:
					if ev.Rune() != 'q' {
						continue
					}
					tui.close(running)
					return
				case tcell.KeyEscape, tcell.KeyCtrlC:
					tui.close(running)
					return
				}
			case *tcell.EventResize:
				tui.screen.Sync()
			}
		case s := <-tui.newData:
			tui.snapshots = append(tui.snapshots, s)
			if tui.snapshotIndex >= len(tui.snapshots)-2 {
				tui.snapshotIndex = len(tui.snapshots) - 1
			}
			tui.drawSnapshot()
		case <-tui.running:
			running = false
			tui.drawString(tui.positionRunning, 0, "finished")
			tui.screen.Show()
			tui.running = nil
		}
	}
}

func (tui *terminalUI) close(running bool) {
	tui.screen.Fini()
	tui.done()
	if tui.Quit != nil {
		tui.Quit()
	}
	if running {
		fmt.Println("terminal ui closed")
	}
}
