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
	"io"
	"os"
	"strings"
)

type cmdUI struct {
	Out io.Writer
}

func (c cmdUI) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c cmdUI) Initialise() error {
	fmt.Fprintf(c.out(), "Waiting for game\n")
	return nil
}

func (c cmdUI) NewGame(s Snapshot) {
	fmt.Fprintln(c.out())
	fmt.Fprintf(c.out(), "New game %s%s%s\n", colours[3], s.ID, colourReset)
	c.print(s)
}

func (c cmdUI) NewStep(s Snapshot) {
	c.print(s)
}

func (c cmdUI) print(s Snapshot) {
	w := c.out()
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.PrintGame(true))
	fmt.Fprintln(w)

	ss := buildGameOverviewStrings(s, s.Steps, -1)
	for i := range ss {
		if strings.TrimSpace(ss[i]) != "" {
			fmt.Fprintln(w, ss[i])
		}
	}
}

func (c cmdUI) Finish(last Snapshot) error {
	if last.GameOver {
		fmt.Fprintf(c.out(), "\nGame over! (length %d / %d steps)\n\n", len(last.Body), last.Steps)
	} else {
		fmt.Fprintf(c.out(), "\nStopped. (length %d / %d steps)\n\n", len(last.Body), last.Steps)
	}
	return nil
}

func (c cmdUI) Wait() {
}
