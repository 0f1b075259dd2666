// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapematch

import (
	"github.com/cpmech/gomech/dof"
	"github.com/cpmech/gomech/ff"
	"github.com/cpmech/gomech/inp"
	"github.com/cpmech/gomech/mst"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// ShapeMatching pulls clustered particles towards their shape-matched targets
//
//   f_i += k (target_i - x_i)
//
// The targets are treated as constants by the derivatives: K = -k I on the translational
// components of each clustered particle and B = 0
type ShapeMatching[C, D any] struct {
	Engine    *Engine[C, D]              // shape matching engine
	Stiffness float64                    // k
	state     *mst.MechanicalState[C, D] // rest positions and generation
	sdim      int                        // number of translational components
	em        [][]float64                // [S][S] block of one particle
}

// register force field
func init() {
	ff.Register("shapematching", ff.Info{Kinds: []dof.Kind{dof.KindVec1, dof.KindVec2, dof.KindVec3, dof.KindRigid2, dof.KindRigid3}},
		func(name string, ms mst.Base, data *inp.ForceFieldData) (ff.BaseForceField, error) {
			switch s := ms.(type) {
			case *mst.MechanicalState[dof.Vec1, dof.Vec1]:
				return allocate(name, s, data)
			case *mst.MechanicalState[dof.Vec2, dof.Vec2]:
				return allocate(name, s, data)
			case *mst.MechanicalState[dof.Vec3, dof.Vec3]:
				return allocate(name, s, data)
			case *mst.MechanicalState[dof.Rigid2Coord, dof.Vec3]:
				return allocate(name, s, data)
			case *mst.MechanicalState[dof.Rigid3Coord, dof.Vec6]:
				return allocate(name, s, data)
			}
			return nil, chk.Err("shape matching cannot handle state %q", ms.Name())
		})
}

// allocate builds shape matching from input data
func allocate[C, D any](name string, ms *mst.MechanicalState[C, D], data *inp.ForceFieldData) (ff.BaseForceField, error) {

	// engine
	eng := NewEngine(ms.Types())
	eng.Iterations = int(data.Prm("iterations", 1))
	eng.SetAffineRatio(data.Prm("affineratio", 0))
	if err := eng.SetFixedWeight(data.Prm("fixedweight", 1)); err != nil {
		return nil, err
	}
	fixed0, err := points(data.Fixed0)
	if err != nil {
		return nil, chk.Err("cannot read rest positions of fixed particles:\n%v", err)
	}
	if eng.FixedPosition, err = points(data.Fixed); err != nil {
		return nil, chk.Err("cannot read positions of fixed particles:\n%v", err)
	}
	eng.SetFixedPosition0(fixed0)
	if len(data.Clusters) > 0 {
		eng.SetClusters(data.Clusters)
	}
	eng.Verbose = io.Verbose

	// model
	o, err := New(ms, eng, data.Prm("stiffness", 1))
	if err != nil {
		return nil, err
	}
	return ff.NewForceField[C, D](name, ms, o), nil
}

// New returns a new shape matching model acting upon ms. The rest data is computed immediately
func New[C, D any](ms *mst.MechanicalState[C, D], eng *Engine[C, D], stiffness float64) (o *ShapeMatching[C, D], err error) {
	if stiffness <= 0 {
		return nil, chk.Err("stiffness of shape matching must be positive; %g is invalid", stiffness)
	}
	rest, err := ms.ReadCoords(mst.RestPosition)
	if err != nil {
		return
	}
	if err = eng.Init(rest, ms.Generation()); err != nil {
		return nil, err
	}
	o = &ShapeMatching[C, D]{Engine: eng, Stiffness: stiffness, state: ms}
	o.sdim = ms.Types().SpatialDim()
	S := ms.BlockSize()
	o.em = utl.Alloc(S, S)
	for i := 0; i < o.sdim; i++ {
		o.em[i][i] = -stiffness
	}
	return
}

// AddForceTo adds k (target - x) to f
func (o *ShapeMatching[C, D]) AddForceTo(p *ff.Params, f []D, x []C, v []D) {
	target, ok := o.targets(x)
	if !ok {
		return
	}
	types := o.state.Types()
	for i := range x {
		if !o.Engine.Clustered(i) {
			continue
		}
		xi, ti := dof.Center(types, &x[i]), dof.Center(types, &target[i])
		fi := types.Deriv(&f[i])
		for k := 0; k < o.sdim; k++ {
			fi[k] += o.Stiffness * (ti[k] - xi[k])
		}
	}
}

// AddDForceTo adds -kFactor k dx to df on clustered particles
func (o *ShapeMatching[C, D]) AddDForceTo(p *ff.Params, df []D, dx []D) {
	types := o.state.Types()
	for i := range dx {
		if !o.Engine.Clustered(i) {
			continue
		}
		dfi, dxi := types.Deriv(&df[i]), types.Deriv(&dx[i])
		for k := 0; k < o.sdim; k++ {
			dfi[k] -= p.KFactor * o.Stiffness * dxi[k]
		}
	}
}

// PotentialEnergyOf returns ½ k Σ |target - x|²
func (o *ShapeMatching[C, D]) PotentialEnergyOf(p *ff.Params, x []C) (e float64) {
	target, ok := o.targets(x)
	if !ok {
		return
	}
	types := o.state.Types()
	for i := range x {
		if !o.Engine.Clustered(i) {
			continue
		}
		xi, ti := dof.Center(types, &x[i]), dof.Center(types, &target[i])
		for k := 0; k < o.sdim; k++ {
			e += 0.5 * o.Stiffness * (ti[k] - xi[k]) * (ti[k] - xi[k])
		}
	}
	return
}

// AddKTo adds the diagonal blocks -kFact k I of clustered particles to m
func (o *ShapeMatching[C, D]) AddKTo(m ff.Matrix, kFact float64, offset int) {
	S := len(o.em)
	for i := 0; i < o.state.Size(); i++ {
		if o.Engine.Clustered(i) {
			ff.AddToMatrix(m, offset, S, []int{i}, o.em, kFact)
		}
	}
}

// AddBTo does nothing: shape matching has no damping
func (o *ShapeMatching[C, D]) AddBTo(m ff.Matrix, bFact float64, offset int) {}

// MatrixNnz returns the number of entries added by AddKTo
func (o *ShapeMatching[C, D]) MatrixNnz() (nnz int) {
	S := len(o.em)
	for i := 0; i < o.state.Size(); i++ {
		if o.Engine.Clustered(i) {
			nnz += S * S
		}
	}
	return
}

// AddClambdaTo adds cFactor/k λ to res on clustered particles
func (o *ShapeMatching[C, D]) AddClambdaTo(p *ff.Params, res, lambda []D, cFactor float64) {
	types := o.state.Types()
	for i := range lambda {
		if !o.Engine.Clustered(i) {
			continue
		}
		ri, li := types.Deriv(&res[i]), types.Deriv(&lambda[i])
		for k := 0; k < o.sdim; k++ {
			ri[k] += cFactor / o.Stiffness * li[k]
		}
	}
}

// FillForceMask marks the clustered particles
func (o *ShapeMatching[C, D]) FillForceMask(m *mst.Mask) {
	for i := 0; i < m.Size(); i++ {
		if o.Engine.Clustered(i) {
			m.Insert(i)
		}
	}
}

// targets runs the engine at x. Errors are reported and no target is returned
func (o *ShapeMatching[C, D]) targets(x []C) (target []C, ok bool) {
	rest, err := o.state.ReadCoords(mst.RestPosition)
	if err == nil {
		target, err = o.Engine.Update(x, rest, o.state.Generation())
	}
	if err != nil {
		io.Pfred("shape matching of %q failed:\n%v\n", o.state.Name(), err)
		return nil, false
	}
	return target, true
}

// points converts lists of coordinates into 3D points
func points(vals [][]float64) (res []dof.Vec3, err error) {
	res = make([]dof.Vec3, len(vals))
	for i, v := range vals {
		if len(v) < 1 || len(v) > 3 {
			return nil, chk.Err("point # %d must have 1, 2 or 3 coordinates; %d given", i, len(v))
		}
		copy(res[i][:], v)
	}
	return
}
