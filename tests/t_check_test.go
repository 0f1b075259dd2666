// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tests

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	_ "github.com/cpmech/gomech/ff/constant"
	_ "github.com/cpmech/gomech/ff/shapematch"
	_ "github.com/cpmech/gomech/ff/spring"
)

func Test_scenes01(tst *testing.T) {

	//Verbose()
	chk.PrintTitle("scenes01")

	CompareResults(tst, "../inp/data/springs.scene", "data/springs.cmp", 1e-12, 1e-12, 1e-12, chk.Verbose)
}

func Test_scenes02(tst *testing.T) {

	//Verbose()
	chk.PrintTitle("scenes02")

	CompareResults(tst, "../inp/data/cluster.yaml", "data/cluster.cmp", 1e-12, 1e-12, 1e-12, chk.Verbose)
}

func Test_scenes03(tst *testing.T) {

	//Verbose()
	chk.PrintTitle("scenes03")

	CompareResults(tst, "data/bodies.yaml", "data/bodies.cmp", 1e-12, 1e-12, 1e-12, chk.Verbose)
}
