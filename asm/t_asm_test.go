// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"testing"

	"github.com/cpmech/gomech/dof"
	"github.com/cpmech/gomech/ff"
	"github.com/cpmech/gomech/mst"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_accessor01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("accessor01")

	// offsets follow the order of states
	points := mst.New[dof.Vec3, dof.Vec3]("points", dof.Vec3Types{}, 2)
	bodies := mst.New[dof.Rigid3Coord, dof.Vec6]("bodies", dof.Rigid3Types{}, 3)
	other := mst.New[dof.Vec1, dof.Vec1]("other", dof.Vec1Types{}, 4)
	acc := NewAccessor(points, bodies)
	chk.Int(tst, "size", acc.Size(), 2*3+3*6)
	offset, ok := acc.Offset(bodies)
	if !ok {
		tst.Errorf("bodies should be in accessor\n")
		return
	}
	chk.Int(tst, "offset(bodies)", offset, 6)
	if _, ok = acc.Offset(other); ok {
		tst.Errorf("other should not be in accessor\n")
		return
	}
	chk.Int(tst, "number of states", len(acc.States()), 2)

	// matrix references
	if _, err := acc.GetMatrix(points); err == nil {
		tst.Errorf("GetMatrix should have failed without global matrix\n")
		return
	}
	acc.Matrix = NewDenseMatrix(acc.Size())
	ref, err := acc.GetMatrix(bodies)
	if err != nil {
		tst.Errorf("GetMatrix failed:\n%v", err)
		return
	}
	chk.Int(tst, "ref.Offset", ref.Offset, 6)
	if _, err = acc.GetMatrix(other); err == nil {
		tst.Errorf("GetMatrix should have failed with unknown state\n")
		return
	}

	// repeated state
	defer func() {
		if r := recover(); r == nil {
			tst.Errorf("AddState should have panicked\n")
		}
	}()
	acc.AddState(points)
}

func Test_matrices01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("matrices01")

	// element matrix of two nodes with block size 2 placed after an offset of 1
	em := [][]float64{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	tm := NewTripletMatrix(7, 2*16)
	dm := NewDenseMatrix(7)
	for _, m := range []ff.Matrix{tm, dm} {
		ff.AddToMatrix(m, 1, 2, []int{2, 0}, em, 1)
		ff.AddToMatrix(m, 1, 2, []int{2, 0}, em, -0.5)
	}
	chk.Int(tst, "N", tm.N, 7)
	td := tm.ToDense()
	r, c := td.Dims()
	chk.Ints(tst, "dims", []int{r, c}, []int{7, 7})
	for i := 0; i < 7; i++ {
		for j := 0; j < 7; j++ {
			chk.Float64(tst, io.Sf("T%d%d", i, j), 1e-15, td.At(i, j), dm.D.At(i, j))
		}
	}

	// node 2 => rows/cols 5,6; node 0 => rows/cols 1,2
	chk.Float64(tst, "A55", 1e-15, dm.D.At(5, 5), 0.5)
	chk.Float64(tst, "A56", 1e-15, dm.D.At(5, 6), 1)
	chk.Float64(tst, "A51", 1e-15, dm.D.At(5, 1), 1.5)
	chk.Float64(tst, "A15", 1e-15, dm.D.At(1, 5), 4.5)
	chk.Float64(tst, "A22", 1e-15, dm.D.At(2, 2), 8)
	chk.Float64(tst, "A00", 1e-15, dm.D.At(0, 0), 0)

	// restart
	tm.Start()
	td = tm.ToDense()
	chk.Float64(tst, "T55", 1e-15, td.At(5, 5), 0)

	// null nnz
	tm = NewTripletMatrix(3, 0)
	tm.Add(1, 1, 3)
	chk.Float64(tst, "T11", 1e-15, tm.ToDense().At(1, 1), 3)
}
