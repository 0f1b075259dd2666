// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mech

import (
	"github.com/cpmech/gomech/dof"
	"github.com/cpmech/gomech/ff"
	"github.com/cpmech/gomech/mst"
	"github.com/cpmech/gosl/chk"
)

// EnergyPath returns the potential energy along the straight path from rest positions (s=0) to
// positions p.X (s=1); e.g. s = utl.LinSpace(0, 1, n). Orientations of 3D rigid bodies are not
// interpolated. Positions p.X are restored afterwards
func (o *System) EnergyPath(p *ff.Params, s []float64) (e []float64, err error) {

	// backup
	x := make([][][]float64, len(o.States))
	x0 := make([][][]float64, len(o.States))
	for k, ms := range o.States {
		if x[k], err = ms.CoordValues(p.X); err != nil {
			return
		}
		if x0[k], err = ms.CoordValues(mst.RestPosition); err != nil {
			return
		}
	}
	defer func() {
		for k, ms := range o.States {
			ms.SetCoordValues(p.X, x[k])
		}
	}()

	// path
	e = make([]float64, len(s))
	for i, si := range s {
		for k, ms := range o.States {
			xs := make([][]float64, len(x[k]))
			for j := range x[k] {
				xs[j] = append([]float64{}, x[k][j]...)
				ncomp := len(xs[j])
				if ms.Kind() == dof.KindRigid3 {
					ncomp = 3
				}
				for c := 0; c < ncomp; c++ {
					xs[j][c] = x0[k][j][c] + si*(x[k][j][c]-x0[k][j][c])
				}
			}
			if err = ms.SetCoordValues(p.X, xs); err != nil {
				return nil, chk.Err("cannot set positions of state %q at s=%g:\n%v", ms.Name(), si, err)
			}
		}
		e[i] = o.PotentialEnergy(p)
	}
	return
}
