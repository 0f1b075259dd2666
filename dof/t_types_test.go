// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dof

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_types01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("types01")

	chk.Int(tst, "S(Vec1)", Vec1Types{}.DerivSize(), 1)
	chk.Int(tst, "S(Vec2)", Vec2Types{}.DerivSize(), 2)
	chk.Int(tst, "S(Vec3)", Vec3Types{}.DerivSize(), 3)
	chk.Int(tst, "S(Vec6)", Vec6Types{}.DerivSize(), 6)
	chk.Int(tst, "S(Rigid2)", Rigid2Types{}.DerivSize(), 3)
	chk.Int(tst, "S(Rigid3)", Rigid3Types{}.DerivSize(), 6)
	chk.Int(tst, "ncoord(Rigid3)", Rigid3Types{}.CoordSize(), 7)

	chk.String(tst, Vec3Types{}.Name(), "Vec3d")
	chk.String(tst, Rigid3Types{}.Name(), "Rigid3d")

	for k := KindVec1; k <= KindRigid3; k++ {
		kk, ok := KindFromName(k.String())
		if !ok || kk != k {
			tst.Errorf("KindFromName failed for %v\n", k)
			return
		}
	}
	if _, ok := KindFromName("Vec4d"); ok {
		tst.Errorf("KindFromName should have failed\n")
	}
}

func Test_types02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("types02")

	// views alias the data
	var d Vec3
	Vec3Types{}.Deriv(&d)[1] = 7
	chk.Array(tst, "d", 1e-17, d[:], []float64{0, 7, 0})

	// centers
	r := NewRigid3Coord(Vec3{1, 2, 3})
	p := Center[Rigid3Coord, Vec6](Rigid3Types{}, &r)
	chk.Array(tst, "center", 1e-17, p[:], []float64{1, 2, 3})
	SetCenter[Rigid3Coord, Vec6](Rigid3Types{}, &r, Vec3{4, 5, 6})
	chk.Array(tst, "rigid", 1e-17, r[:], []float64{4, 5, 6, 0, 0, 0, 1})

	c := Rigid2Coord{1, 2, 0.5}
	p = Center[Rigid2Coord, Vec3](Rigid2Types{}, &c)
	chk.Array(tst, "center2", 1e-17, p[:], []float64{1, 2, 0})

	// quaternions
	r[3], r[4], r[5], r[6] = 0, 0, 0, 2
	r.Normalize()
	q := r.Quat()
	chk.Array(tst, "q", 1e-17, q[:], []float64{0, 0, 0, 1})
	r[6] = 0
	r.Normalize()
	q = r.Quat()
	chk.Array(tst, "q(null)", 1e-17, q[:], []float64{0, 0, 0, 1})
}
