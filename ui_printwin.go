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
	"os"

	"github.com/pkg/errors"
)

// printWinUI writes the outcome of the last game into File.
type printWinUI struct {
	File        string
	UI          UI
	initialised bool
}

func (p *printWinUI) Initialise() error {
	p.initialised = true
	if p.UI != nil {
		return p.UI.Initialise()
	}
	return nil
}

func (p *printWinUI) NewGame(s Snapshot) {
	if p.UI != nil {
		p.UI.NewGame(s)
	}
}

func (p *printWinUI) NewStep(s Snapshot) {
	if p.UI != nil {
		p.UI.NewStep(s)
	}
}

func (p *printWinUI) Finish(last Snapshot) error {
	var err error
	if p.UI != nil {
		err = p.UI.Finish(last)
	}

	if p.initialised {
		f, newErr := os.Create(p.File)
		if newErr != nil {
			return errors.Wrap(newErr, "create outcome file failed")
		}
		defer f.Close()

		outcome := "Stopped"
		if last.GameOver {
			outcome = "Game over"
		}
		_, newErr = f.WriteString(fmt.Sprintf("%s! (length %d / %d steps)\n", outcome, len(last.Body), last.Steps))
		if newErr != nil {
			return errors.Wrap(newErr, "write outcome failed")
		}
	}

	return err
}

func (p *printWinUI) Wait() {
	if p.UI != nil {
		p.UI.Wait()
	}
}
