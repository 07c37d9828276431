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
	"encoding/gob"
	"os"

	"github.com/pkg/errors"
)

// dumpUI collects every snapshot and writes them as gob on Finish.
type dumpUI struct {
	File      string
	UI        UI
	snapshots []Snapshot
}

func (d *dumpUI) Initialise() error {
	if d.UI != nil {
		return d.UI.Initialise()
	}
	return nil
}

func (d *dumpUI) NewGame(s Snapshot) {
	d.snapshots = append(d.snapshots, s)

	if d.UI != nil {
		d.UI.NewGame(s)
	}
}

func (d *dumpUI) NewStep(s Snapshot) {
	d.snapshots = append(d.snapshots, s)

	if d.UI != nil {
		d.UI.NewStep(s)
	}
}

func (d *dumpUI) Finish(last Snapshot) error {
	var err error
	if d.UI != nil {
		err = d.UI.Finish(last)
	}

	if len(d.snapshots) == 0 {
		return err
	}

	f, newErr := os.Create(d.File)
	if newErr != nil {
		return errors.Wrap(newErr, "create dump file failed")
	}
	defer f.Close()
	enc := gob.NewEncoder(f)
	newErr = enc.Encode(d.snapshots)

	if newErr != nil {
		return errors.Wrap(newErr, "encode dump failed")
	}

	return err
}

func (d *dumpUI) Wait() {
	if d.UI != nil {
		d.UI.Wait()
	}
}

// readDump reads snapshots written by dumpUI.
func readDump(file string) ([]Snapshot, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrap(err, "open dump file failed")
	}
	defer f.Close()

	var snapshots []Snapshot
	if err := gob.NewDecoder(f).Decode(&snapshots); err != nil {
		return nil, errors.Wrap(err, "decode dump failed")
	}
	return snapshots, nil
}
