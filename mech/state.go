// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mech

import (
	"github.com/cpmech/gomech/dof"
	"github.com/cpmech/gomech/inp"
	"github.com/cpmech/gomech/mst"
	"github.com/cpmech/gosl/chk"
)

// NewState allocates a mechanical state from input data. The datatype name selects the family of DOFs
func NewState(sd *inp.StateData) (ms mst.Base, err error) {
	kind, ok := dof.KindFromName(sd.Type)
	if !ok {
		return nil, chk.Err("state %q: datatype %q is not available", sd.Name, sd.Type)
	}
	switch kind {
	case dof.KindVec1:
		return newState[dof.Vec1, dof.Vec1](sd, dof.Vec1Types{})
	case dof.KindVec2:
		return newState[dof.Vec2, dof.Vec2](sd, dof.Vec2Types{})
	case dof.KindVec3:
		return newState[dof.Vec3, dof.Vec3](sd, dof.Vec3Types{})
	case dof.KindVec6:
		return newState[dof.Vec6, dof.Vec6](sd, dof.Vec6Types{})
	case dof.KindRigid2:
		return newState[dof.Rigid2Coord, dof.Vec3](sd, dof.Rigid2Types{})
	case dof.KindRigid3:
		return newState[dof.Rigid3Coord, dof.Vec6](sd, dof.Rigid3Types{})
	}
	return nil, chk.Err("state %q: datatype %q cannot be allocated", sd.Name, sd.Type)
}

// newState copies positions, rest positions and velocities into a new state
func newState[C, D any](sd *inp.StateData, types dof.Types[C, D]) (ms *mst.MechanicalState[C, D], err error) {
	n := len(sd.Position)
	ms = mst.New[C, D](sd.Name, types, n)
	x, err := coords(types, sd.Position)
	if err != nil {
		return nil, chk.Err("state %q: cannot read positions:\n%v", sd.Name, err)
	}
	ms.SetCoords(mst.Position, x)
	rest := x
	if len(sd.Rest) > 0 {
		if rest, err = coords(types, sd.Rest); err != nil {
			return nil, chk.Err("state %q: cannot read rest positions:\n%v", sd.Name, err)
		}
	}
	ms.SetCoords(mst.RestPosition, rest)
	if len(sd.Velocity) > 0 {
		v := make([]D, len(sd.Velocity))
		for i, vals := range sd.Velocity {
			d := types.Deriv(&v[i])
			if len(vals) != len(d) {
				return nil, chk.Err("state %q: velocity # %d must have %d components; %d given", sd.Name, i, len(d), len(vals))
			}
			copy(d, vals)
		}
		if err = ms.SetDerivs(mst.Velocity, v); err != nil {
			return nil, err
		}
	}
	return
}

// coords converts lists of scalars into coordinates
func coords[C, D any](types dof.Types[C, D], vals [][]float64) (res []C, err error) {
	res = make([]C, len(vals))
	for i, v := range vals {
		c := types.Coord(&res[i])
		if len(v) != len(c) {
			return nil, chk.Err("coordinate # %d must have %d components; %d given", i, len(c), len(v))
		}
		copy(c, v)
	}
	return
}
