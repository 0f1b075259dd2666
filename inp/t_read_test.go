// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_scene01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("scene01")

	scn, err := ReadScene("data/springs.scene")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.String(tst, scn.Key, "springs")
	chk.Float64(tst, "kfactor", 1e-17, scn.Params.KFactor, 1)
	chk.Int(tst, "nstates", len(scn.States), 1)
	chk.Int(tst, "nforcefields", len(scn.ForceFields), 2)

	s := scn.GetState("particles")
	if s == nil {
		tst.Errorf("cannot find state\n")
		return
	}
	chk.String(tst, s.Type, "Vec3d")
	chk.Deep2(tst, "rest", 1e-17, s.Rest, [][]float64{{0, 0, 0}, {1, 0, 0}})

	rod := scn.ForceFields[0]
	if rod.Material == nil {
		tst.Errorf("material of rod was not connected\n")
		return
	}
	chk.String(tst, rod.Material.Model, "rod-elast")
	chk.Float64(tst, "E", 1e-17, rod.Material.Prms["E"], 200)
	chk.Ints(tst, "pair", rod.Pairs[0], []int{0, 1})

	load := scn.ForceFields[1]
	chk.Ints(tst, "indices", load.Indices, []int{1})
	chk.Float64(tst, "missing prm", 1e-17, load.Prm("nothing", 3), 3)
}

func Test_scene02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("scene02")

	scn, err := ReadScene("data/cluster.yaml")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.String(tst, scn.Key, "cluster")
	chk.Int(tst, "nstates", len(scn.States), 1)
	f := scn.ForceFields[0]
	chk.String(tst, f.Type, "shapematching")
	chk.Float64(tst, "iterations", 1e-17, f.Prm("iterations", 0), 1)
	chk.Float64(tst, "stiffness", 1e-17, f.Prm("stiffness", 0), 100)
	chk.Ints(tst, "cluster", f.Clusters[0], []int{0, 1})
	chk.Float64(tst, "default kfactor", 1e-17, scn.Params.KFactor, 1)
	chk.Float64(tst, "default bfactor", 1e-17, scn.Params.BFactor, 0)
}

func Test_scene03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("scene03")

	_, err := ParseScene([]byte(`{"states":[{"name":"a"}],"forcefields":[{"type":"spring","state":"b"}]}`), false)
	if err == nil {
		tst.Errorf("unknown state should have been detected\n")
		return
	}
	io.Pforan("%v\n", err)

	_, err = ParseScene([]byte(`{"states":[{"name":"a"},{"name":"a"}]}`), false)
	if err == nil {
		tst.Errorf("repeated state should have been detected\n")
		return
	}

	_, err = ParseScene([]byte(`{"states":[{"name":"a"}],"forcefields":[{"type":"spring","state":"a","mat":"rubber"}]}`), false)
	if err == nil {
		tst.Errorf("unknown material should have been detected\n")
		return
	}

	scn, err := ParseScene([]byte("states:\n  - name: a\nforcefields:\n  - type: constant\n    state: a\n"), true)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.String(tst, scn.ForceFields[0].Name, "constant0")
}

func Test_scene04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("scene04")

	b, err := ReadBytes("data/cluster.yaml")
	if err != nil {
		tst.Errorf("ReadBytes failed:\n%v", err)
		return
	}
	if len(b) == 0 {
		tst.Errorf("file should not be empty\n")
		return
	}

	// missing file: error instead of panic
	if _, err = ReadBytes("data/nothing.scene"); err == nil {
		tst.Errorf("ReadBytes should have failed with missing file\n")
		return
	}
	if _, err = ReadScene("data/nothing.yaml"); err == nil {
		tst.Errorf("ReadScene should have failed with missing file\n")
		return
	}
	io.Pforan("%v\n", err)
}
