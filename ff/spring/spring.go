// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package spring implements elastic springs (with axial damping) between pairs of points
package spring

import (
	"math"

	"github.com/cpmech/gomech/dof"
	"github.com/cpmech/gomech/ff"
	"github.com/cpmech/gomech/inp"
	"github.com/cpmech/gomech/mdl/rod"
	"github.com/cpmech/gomech/mst"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Spring holds the data of one spring
type Spring struct {
	I, J int     // indices of end points
	Ks   float64 // stiffness
	Kd   float64 // damping
	L0   float64 // rest length; negative means computed from rest positions
}

// Springs implements a set of springs acting upon points of the same family.
//
//   f_I += (Ks (l - L0) + Kd (v_J - v_I)·u) u  with  u = (x_J - x_I) / l
//   f_J -= the same
//
// Derivatives and matrices use the linearisation computed by the last call to AddForceTo
type Springs[V any] struct {

	// basic data
	Types   dof.Types[V, V] // DOF descriptor
	Springs []Spring        // springs
	Ndim    int             // number of scalars per point == block size S

	// linearisation @ each spring
	G [][][]float64 // [nsprings][ndim][ndim] df_I/dx_J
	H [][][]float64 // [nsprings][ndim][ndim] df_I/dv_J

	// scratchpad
	d  []float64   // [ndim] x_J - x_I
	w  []float64   // [ndim] v_J - v_I
	em [][]float64 // [2*ndim][2*ndim] element matrix
}

// register force field
func init() {
	ff.Register("spring", ff.Info{Kinds: []dof.Kind{dof.KindVec1, dof.KindVec2, dof.KindVec3, dof.KindVec6}},
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
			}
			return nil, chk.Err("spring cannot handle state %q", ms.Name())
		})
}

// allocate builds springs from input data
func allocate[V any](name string, ms *mst.MechanicalState[V, V], data *inp.ForceFieldData) (ff.BaseForceField, error) {

	if data == nil || len(data.Pairs) == 0 {
		return nil, chk.Err("springs %q require at least one pair of points", name)
	}

	// material
	var mdl rod.Model
	if data.Material != nil {
		var err error
		mdl, err = rod.New(data.Material.Model)
		if err != nil {
			return nil, err
		}
		if err = mdl.Init(data.Material.Prms); err != nil {
			return nil, err
		}
	}

	// springs
	springs := make([]Spring, len(data.Pairs))
	for k, pair := range data.Pairs {
		if len(pair) != 2 {
			return nil, chk.Err("spring # %d must have 2 points; %d given", k, len(pair))
		}
		springs[k] = Spring{I: pair[0], J: pair[1], Ks: data.Prm("ks", 0), Kd: data.Prm("kd", 0), L0: data.Prm("l0", -1)}
	}

	// model
	rest, err := ms.ReadCoords(mst.RestPosition)
	if err != nil {
		return nil, err
	}
	o, err := New[V](ms.Types(), springs, rest)
	if err != nil {
		return nil, err
	}
	if mdl != nil {
		for k := range o.Springs {
			if o.Springs[k].L0 <= 0 {
				return nil, chk.Err("spring # %d of %q: material %q requires a positive rest length; L0=%g is invalid", k, name, data.Material.Name, o.Springs[k].L0)
			}
			o.Springs[k].Ks = mdl.Stiffness(o.Springs[k].L0)
			o.Springs[k].Kd = mdl.Damping(o.Springs[k].L0)
		}
	}
	o.Linearise(rest)
	return ff.NewForceField[V, V](name, ms, o), nil
}

// New returns a new set of springs. Negative rest lengths are computed from rest positions.
// The linearisation is initialised at the rest positions
func New[V any](types dof.Types[V, V], springs []Spring, rest []V) (o *Springs[V], err error) {
	o = new(Springs[V])
	o.Types = types
	o.Springs = springs
	o.Ndim = types.DerivSize()
	o.G = make([][][]float64, len(springs))
	o.H = make([][][]float64, len(springs))
	for k, s := range springs {
		if s.I < 0 || s.J < 0 || s.I >= len(rest) || s.J >= len(rest) || s.I == s.J {
			return nil, chk.Err("spring # %d has invalid points (%d, %d); number of points = %d", k, s.I, s.J, len(rest))
		}
		if s.L0 < 0 {
			o.Springs[k].L0 = o.distance(&rest[s.I], &rest[s.J])
		}
		o.G[k] = utl.Alloc(o.Ndim, o.Ndim)
		o.H[k] = utl.Alloc(o.Ndim, o.Ndim)
	}
	o.d = make([]float64, o.Ndim)
	o.w = make([]float64, o.Ndim)
	o.em = utl.Alloc(2*o.Ndim, 2*o.Ndim)
	o.Linearise(rest)
	return
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// AddForceTo adds spring forces to f and updates the linearisation
func (o *Springs[V]) AddForceTo(p *ff.Params, f []V, x []V, v []V) {
	o.Linearise(x)
	for _, s := range o.Springs {
		l, ok := o.direction(x, s)
		if !ok {
			continue
		}
		fs := s.Ks * (l - s.L0)
		if len(v) == len(x) && s.Kd != 0 {
			vi, vj := o.Types.Deriv(&v[s.I]), o.Types.Deriv(&v[s.J])
			for a := 0; a < o.Ndim; a++ {
				o.w[a] = vj[a] - vi[a]
			}
			fs += s.Kd * dot(o.w, o.d)
		}
		fi, fj := o.Types.Deriv(&f[s.I]), o.Types.Deriv(&f[s.J])
		for a := 0; a < o.Ndim; a++ {
			fi[a] += fs * o.d[a]
			fj[a] -= fs * o.d[a]
		}
	}
}

// AddDForceTo adds kFactor K dx + bFactor B dx to df
func (o *Springs[V]) AddDForceTo(p *ff.Params, df []V, dx []V) {
	for k, s := range o.Springs {
		xi, xj := o.Types.Deriv(&dx[s.I]), o.Types.Deriv(&dx[s.J])
		for a := 0; a < o.Ndim; a++ {
			o.w[a] = xj[a] - xi[a]
		}
		fi, fj := o.Types.Deriv(&df[s.I]), o.Types.Deriv(&df[s.J])
		for a := 0; a < o.Ndim; a++ {
			var sum float64
			for b := 0; b < o.Ndim; b++ {
				sum += (p.KFactor*o.G[k][a][b] + p.BFactor*o.H[k][a][b]) * o.w[b]
			}
			fi[a] += sum
			fj[a] -= sum
		}
	}
}

// PotentialEnergyOf returns Σ ½ Ks (l - L0)²
func (o *Springs[V]) PotentialEnergyOf(p *ff.Params, x []V) (e float64) {
	for _, s := range o.Springs {
		l := o.distance(&x[s.I], &x[s.J])
		e += 0.5 * s.Ks * (l - s.L0) * (l - s.L0)
	}
	return
}

// AddKTo adds kFact K to m
func (o *Springs[V]) AddKTo(m ff.Matrix, kFact float64, offset int) {
	for k, s := range o.Springs {
		o.elementMatrix(o.G[k])
		ff.AddToMatrix(m, offset, o.Ndim, []int{s.I, s.J}, o.em, kFact)
	}
}

// AddBTo adds bFact B to m
func (o *Springs[V]) AddBTo(m ff.Matrix, bFact float64, offset int) {
	for k, s := range o.Springs {
		o.elementMatrix(o.H[k])
		ff.AddToMatrix(m, offset, o.Ndim, []int{s.I, s.J}, o.em, bFact)
	}
}

// MatrixNnz returns the number of entries added by AddKTo or AddBTo
func (o *Springs[V]) MatrixNnz() int {
	return len(o.Springs) * 4 * o.Ndim * o.Ndim
}

// FillForceMask marks the end points of all springs
func (o *Springs[V]) FillForceMask(m *mst.Mask) {
	for _, s := range o.Springs {
		m.Insert(s.I)
		m.Insert(s.J)
	}
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// Linearise computes G = df_I/dx_J and H = df_I/dv_J @ x for all springs
//
//   G = Ks [(1 - L0/l) I + (L0/l) u uᵀ]   H = Kd u uᵀ
//
// springs with coincident end points have G = H = 0
func (o *Springs[V]) Linearise(x []V) {
	for k, s := range o.Springs {
		l, ok := o.direction(x, s)
		for a := 0; a < o.Ndim; a++ {
			for b := 0; b < o.Ndim; b++ {
				o.G[k][a][b], o.H[k][a][b] = 0, 0
				if !ok {
					continue
				}
				uu := o.d[a] * o.d[b]
				o.G[k][a][b] = s.Ks * s.L0 / l * uu
				if a == b {
					o.G[k][a][b] += s.Ks * (1 - s.L0/l)
				}
				o.H[k][a][b] = s.Kd * uu
			}
		}
	}
}

// direction computes the unit vector d = (x_J - x_I)/l and returns l
func (o *Springs[V]) direction(x []V, s Spring) (l float64, ok bool) {
	xi, xj := o.Types.Deriv(&x[s.I]), o.Types.Deriv(&x[s.J])
	for a := 0; a < o.Ndim; a++ {
		o.d[a] = xj[a] - xi[a]
	}
	l = math.Sqrt(dot(o.d, o.d))
	if l < 1e-14 {
		return l, false
	}
	for a := 0; a < o.Ndim; a++ {
		o.d[a] /= l
	}
	return l, true
}

// distance returns |x_J - x_I|
func (o *Springs[V]) distance(xi, xj *V) float64 {
	a, b := o.Types.Deriv(xi), o.Types.Deriv(xj)
	var sum float64
	for k := 0; k < o.Ndim; k++ {
		sum += (b[k] - a[k]) * (b[k] - a[k])
	}
	return math.Sqrt(sum)
}

// elementMatrix sets em = [[-A, A], [A, -A]]
func (o *Springs[V]) elementMatrix(A [][]float64) {
	n := o.Ndim
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			o.em[a][b] = -A[a][b]
			o.em[a][n+b] = A[a][b]
			o.em[n+a][b] = A[a][b]
			o.em[n+a][n+b] = -A[a][b]
		}
	}
}

// dot returns u·v
func dot(u, v []float64) (res float64) {
	for i := range u {
		res += u[i] * v[i]
	}
	return
}
