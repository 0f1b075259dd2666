// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package constant implements constant (point) loads applied to a subset of DOFs
package constant

import (
	"github.com/cpmech/gomech/dof"
	"github.com/cpmech/gomech/ff"
	"github.com/cpmech/gomech/inp"
	"github.com/cpmech/gomech/mst"

	"github.com/cpmech/gosl/chk"
)

// Constant adds fixed forces to selected DOFs. An empty set of indices means all DOFs
type Constant[C, D any] struct {
	Types   dof.Types[C, D] // DOF descriptor
	Indices []int           // selected DOFs
	Forces  []D             // [len(Indices)] forces; or one force for all DOFs if Indices is empty
	Total   bool            // Forces[0] is the total force; it is spread evenly among the selected DOFs
}

// register force field
func init() {
	ff.Register("constant", ff.Info{Kinds: []dof.Kind{dof.KindVec1, dof.KindVec2, dof.KindVec3, dof.KindVec6, dof.KindRigid2, dof.KindRigid3}},
		func(name string, ms mst.Base, data *inp.ForceFieldData) (ff.BaseForceField, error) {
			switch s := ms.(type) {
			case *mst.MechanicalState[dof.Vec1, dof.Vec1]:
				return allocate(name, s, data)
			case *mst.MechanicalState[dof.Vec2, dof.Vec2]:
				return allocate(name, s, data)
			case *mst.MechanicalState[dof.Vec3, dof.Vec3]:
				return allocate(name, s, data)
			case *mst.MechanicalState[dof.Vec6, dof.Vec6]:
				return allocate(name, s, data)
			case *mst.MechanicalState[dof.Rigid2Coord, dof.Vec3]:
				return allocate(name, s, data)
			case *mst.MechanicalState[dof.Rigid3Coord, dof.Vec6]:
				return allocate(name, s, data)
			}
			return nil, chk.Err("constant force cannot handle state %q", ms.Name())
		})
}

// allocate builds constant forces from input data
func allocate[C, D any](name string, ms *mst.MechanicalState[C, D], data *inp.ForceFieldData) (ff.BaseForceField, error) {
	o := &Constant[C, D]{Types: ms.Types(), Indices: data.Indices, Total: data.Prm("total", 0) > 0}
	for _, idx := range o.Indices {
		if idx < 0 || idx >= ms.Size() {
			return nil, chk.Err("index %d is out of range; number of DOFs = %d", idx, ms.Size())
		}
	}
	nf := len(o.Indices)
	if nf == 0 || o.Total {
		nf = 1
	}
	if len(data.Vectors) != nf {
		return nil, chk.Err("number of forces must be %d; %d given", nf, len(data.Vectors))
	}
	o.Forces = make([]D, nf)
	for k, vals := range data.Vectors {
		f := o.Types.Deriv(&o.Forces[k])
		if len(vals) != len(f) {
			return nil, chk.Err("force # %d must have %d components; %d given", k, len(f), len(vals))
		}
		copy(f, vals)
	}
	return ff.NewForceField[C, D](name, ms, o), nil
}

// AddForceTo adds the constant forces to f
func (o *Constant[C, D]) AddForceTo(p *ff.Params, f []D, x []C, v []D) {
	o.each(len(f), func(i int, fi []float64, scale float64) {
		out := o.Types.Deriv(&f[i])
		for k := range out {
			out[k] += scale * fi[k]
		}
	})
}

// AddDForceTo does nothing: the forces do not depend on positions
func (o *Constant[C, D]) AddDForceTo(p *ff.Params, df []D, dx []D) {}

// PotentialEnergyOf returns -Σ f·x. Only positions are considered for rigid DOFs in 3D
func (o *Constant[C, D]) PotentialEnergyOf(p *ff.Params, x []C) (e float64) {
	n := o.Types.DerivSize()
	if o.Types.CoordSize() != n {
		n = o.Types.SpatialDim()
	}
	o.each(len(x), func(i int, fi []float64, scale float64) {
		xi := o.Types.Coord(&x[i])
		for k := 0; k < n; k++ {
			e -= scale * fi[k] * xi[k]
		}
	})
	return
}

// FillForceMask marks the selected DOFs
func (o *Constant[C, D]) FillForceMask(m *mst.Mask) {
	if len(o.Indices) == 0 {
		for i := 0; i < m.Size(); i++ {
			m.Insert(i)
		}
		return
	}
	for _, i := range o.Indices {
		m.Insert(i)
	}
}

// each calls fcn for each loaded DOF with its force and scaling factor
func (o *Constant[C, D]) each(size int, fcn func(i int, fi []float64, scale float64)) {
	indices := o.Indices
	if len(indices) == 0 {
		indices = make([]int, size)
		for i := range indices {
			indices[i] = i
		}
	}
	if len(indices) == 0 {
		return
	}
	scale := 1.0
	if o.Total {
		scale = 1.0 / float64(len(indices))
	}
	for k, i := range indices {
		if i >= size {
			continue
		}
		if len(o.Forces) == 1 {
			fcn(i, o.Types.Deriv(&o.Forces[0]), scale)
			continue
		}
		fcn(i, o.Types.Deriv(&o.Forces[k]), scale)
	}
}
