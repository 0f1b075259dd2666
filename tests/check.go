// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tests implements structures and functions to test force fields and scenes
package tests

import (
	"encoding/json"
	"testing"

	"github.com/cpmech/gomech/inp"
	"github.com/cpmech/gomech/mech"
	"github.com/cpmech/gomech/mst"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Results holds reference results of a scene
type Results struct {
	Note   string                 `json:"note"`   // note about the reference
	Forces map[string][][]float64 `json:"forces"` // state name => [ndof][nderiv] forces
	Energy *float64               `json:"energy"` // total potential energy; nil => skip
	K      [][]float64            `json:"K"`      // [ny][ny] global stiffness matrix; empty => skip
}

// CompareResults compares the forces, energy and stiffness matrix of a scene with the
// reference results in a .cmp (JSON) file. Force fields must have been registered by the caller
func CompareResults(tst *testing.T, scenePath, cmpPath string, tolF, tolE, tolK float64, verbose bool) {

	// system
	scene, err := inp.ReadScene(scenePath)
	if err != nil {
		tst.Errorf("CompareResults: cannot read scene:\n%v", err)
		return
	}
	sys, err := mech.Build(scene)
	if err != nil {
		tst.Errorf("CompareResults: cannot build system:\n%v", err)
		return
	}
	p := mech.Params(scene)

	// read file with comparison results
	buf, err := inp.ReadBytes(cmpPath)
	if err != nil {
		tst.Errorf("CompareResults: ReadBytes failed:\n%v", err)
		return
	}
	var cmp Results
	err = json.Unmarshal(buf, &cmp)
	if err != nil {
		tst.Errorf("CompareResults: Unmarshal failed:\n%v", err)
		return
	}
	if verbose && cmp.Note != "" {
		io.Pfyel("%s\n", cmp.Note)
	}

	// check forces
	if verbose {
		io.Pfgreen(". . . checking forces . . .\n")
	}
	err = sys.ComputeForce(p, mst.Force)
	if err != nil {
		tst.Errorf("CompareResults: ComputeForce failed:\n%v", err)
		return
	}
	for name, correct := range cmp.Forces {
		ms := sys.GetState(name)
		if ms == nil {
			tst.Errorf("CompareResults: cannot find state %q\n", name)
			return
		}
		f, err := ms.DerivValues(mst.Force)
		if err != nil {
			tst.Errorf("CompareResults: cannot read forces of %q:\n%v", name, err)
			return
		}
		chk.Deep2(tst, "f@"+name, tolF, f, correct)
	}

	// check energy
	if cmp.Energy != nil {
		if verbose {
			io.Pfgreen(". . . checking energy . . .\n")
		}
		chk.AnaNum(tst, "energy", tolE, sys.PotentialEnergy(p), *cmp.Energy, verbose)
	}

	// check K matrix
	if len(cmp.K) > 0 {
		if verbose {
			io.Pfgreen(". . . checking K matrix . . .\n")
		}
		tm, err := sys.AssembleK(p)
		if err != nil {
			tst.Errorf("CompareResults: AssembleK failed:\n%v", err)
			return
		}
		d := tm.ToDense()
		if len(cmp.K) != tm.N {
			tst.Errorf("CompareResults: K must be %d×%d; %d rows given\n", tm.N, tm.N, len(cmp.K))
			return
		}
		for i, row := range cmp.K {
			for j, val := range row {
				chk.AnaNum(tst, io.Sf("K%d%d", i, j), tolK, d.At(i, j), val, verbose)
			}
		}
	}
}
