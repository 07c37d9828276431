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

type teeUI struct {
	File string
	UI   UI
	f    *os.File
}

func (t *teeUI) Initialise() error {
	if t.f != nil {
		return fmt.Errorf("file already opened")
	}
	var err error
	t.f, err = os.Create(t.File)
	if err != nil {
		t.f = nil
		return errors.Wrap(err, "create tee file failed")
	}
	if t.UI != nil {
		return t.UI.Initialise()
	}
	return nil
}

func (t *teeUI) NewGame(s Snapshot) {
	if t.f != nil {
		t.f.WriteString(fmt.Sprintf("New game %s\n", s.ID))
		t.write(s)
	}

	if t.UI != nil {
		t.UI.NewGame(s)
	}
}

func (t *teeUI) NewStep(s Snapshot) {
	if t.f != nil {
		t.write(s)
	}

	if t.UI != nil {
		t.UI.NewStep(s)
	}
}

func (t *teeUI) write(s Snapshot) {
	t.f.WriteString("\n")
	t.f.WriteString(s.PrintGame(false))
	t.f.WriteString("\n\n")

	ss := buildGameOverviewStrings(s, s.Steps, -1)
	for i := range ss {
		t.f.WriteString(ss[i])
		t.f.WriteString("\n")
	}
	t.f.WriteString("\n")
}

func (t *teeUI) Finish(last Snapshot) error {
	var err error
	if t.f != nil {
		if last.GameOver {
			t.f.WriteString(fmt.Sprintf("\nGame over! (%d / %d)", len(last.Body), last.Steps))
		} else {
			t.f.WriteString(fmt.Sprintf("\nStopped. (%d / %d)", len(last.Body), last.Steps))
		}

		err = t.f.Close()
		t.f = nil
	}
	if t.UI != nil {
		newErr := t.UI.Finish(last)
		if newErr != nil && err != nil {
			return fmt.Errorf("two errors: %s, %s", err.Error(), newErr.Error())
		} else if newErr != nil {
			err = newErr
		}
	}
	return err
}

func (t *teeUI) Wait() {
	if t.UI != nil {
		t.UI.Wait()
	}
}
