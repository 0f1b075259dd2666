// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mst implements mechanical states: the position, velocity and force vectors of a set of DOFs
package mst

import (
	"github.com/cpmech/gomech/dof"
	"github.com/cpmech/gosl/chk"
)

// CoordId selects a vector of coordinates
type CoordId int

// DerivId selects a vector of derivatives
type DerivId int

// default vectors
const (
	NullCoord    CoordId = iota // no vector
	Position                    // current positions
	RestPosition                // rest (initial) positions
	FreePosition                // positions without constraint corrections
)

// default vectors
const (
	NullDeriv DerivId = iota // no vector
	Velocity                 // current velocities
	Force                    // accumulated forces
	Dx                       // small displacements
	Df                       // force derivatives (df = K dx)

	firstAuxDeriv // first identifier given by AllocDeriv
)

// Base defines what the force models and the orchestrator need to know about any state
type Base interface {
	Name() string     // name of state
	Kind() dof.Kind   // family of DOFs
	Size() int        // number of DOFs (not scalars)
	BlockSize() int   // number of scalars per derivative
	Generation() int  // topology version; incremented by Resize and rest positions changes
	ForceMask() *Mask // DOFs in use by the force models

	ResetDerivs(id DerivId)                                  // zeroes a vector of derivatives
	CoordValues(id CoordId) (vals [][]float64, err error)    // copy of coordinates as [ndof][ncoord] scalars
	DerivValues(id DerivId) (vals [][]float64, err error)    // copy of derivatives as [ndof][nderiv] scalars
	SetCoordValues(id CoordId, vals [][]float64) (err error) // sets coordinates from [ndof][ncoord] scalars
}

// MechanicalState holds the vectors of a set of DOFs of the same family
type MechanicalState[C, D any] struct {
	name       string
	types      dof.Types[C, D]
	size       int
	generation int
	coords     map[CoordId][]C
	derivs     map[DerivId][]D
	nextDeriv  DerivId
	mask       Mask
}

// New returns a new state with n DOFs; all default vectors are allocated with zeros
func New[C, D any](name string, types dof.Types[C, D], n int) (o *MechanicalState[C, D]) {
	o = new(MechanicalState[C, D])
	o.name = name
	o.types = types
	o.coords = make(map[CoordId][]C)
	o.derivs = make(map[DerivId][]D)
	o.nextDeriv = firstAuxDeriv
	for _, id := range []CoordId{Position, RestPosition, FreePosition} {
		o.coords[id] = nil
	}
	for _, id := range []DerivId{Velocity, Force, Dx, Df} {
		o.derivs[id] = nil
	}
	o.Resize(n)
	return
}

// Name returns the name of state
func (o *MechanicalState[C, D]) Name() string { return o.name }

// Kind returns the family of DOFs
func (o *MechanicalState[C, D]) Kind() dof.Kind { return o.types.Kind() }

// Types returns the DOF descriptor
func (o *MechanicalState[C, D]) Types() dof.Types[C, D] { return o.types }

// Size returns the number of DOFs
func (o *MechanicalState[C, D]) Size() int { return o.size }

// BlockSize returns the number of scalars per derivative
func (o *MechanicalState[C, D]) BlockSize() int { return o.types.DerivSize() }

// Generation returns the topology version
func (o *MechanicalState[C, D]) Generation() int { return o.generation }

// ForceMask returns the DOFs in use by the force models
func (o *MechanicalState[C, D]) ForceMask() *Mask { return &o.mask }

// Resize changes the number of DOFs. Existent values are kept; new values are zero
func (o *MechanicalState[C, D]) Resize(n int) {
	if n < 0 {
		chk.Panic("cannot resize state %q with negative size %d", o.name, n)
	}
	for id, v := range o.coords {
		o.coords[id] = resize(v, n)
	}
	for id, v := range o.derivs {
		o.derivs[id] = resize(v, n)
	}
	o.size = n
	o.generation++
	o.mask.Assign(n, true)
	o.mask.Activate(false)
}

// ReadCoords returns the vector of coordinates with given id
func (o *MechanicalState[C, D]) ReadCoords(id CoordId) ([]C, error) {
	v, ok := o.coords[id]
	if !ok {
		return nil, chk.Err("state %q does not have coordinates vector %d", o.name, id)
	}
	return v, nil
}

// ReadDerivs returns the vector of derivatives with given id
func (o *MechanicalState[C, D]) ReadDerivs(id DerivId) ([]D, error) {
	v, ok := o.derivs[id]
	if !ok {
		return nil, chk.Err("state %q does not have derivatives vector %d", o.name, id)
	}
	return v, nil
}

// WriteCoords returns the vector of coordinates with given id for writing; allocated if not present.
// Note: writing into RestPosition via this slice does not change Generation; use SetCoords
func (o *MechanicalState[C, D]) WriteCoords(id CoordId) []C {
	if id == NullCoord {
		chk.Panic("cannot write into the null coordinates vector of state %q", o.name)
	}
	v, ok := o.coords[id]
	if !ok || len(v) != o.size {
		v = resize(v, o.size)
		o.coords[id] = v
	}
	return v
}

// WriteDerivs returns the vector of derivatives with given id for writing; allocated if not present
func (o *MechanicalState[C, D]) WriteDerivs(id DerivId) []D {
	if id == NullDeriv {
		chk.Panic("cannot write into the null derivatives vector of state %q", o.name)
	}
	v, ok := o.derivs[id]
	if !ok || len(v) != o.size {
		v = resize(v, o.size)
		o.derivs[id] = v
	}
	return v
}

// SetCoords copies values into the coordinates vector with given id.
// The state is resized if len(values) differs from Size
func (o *MechanicalState[C, D]) SetCoords(id CoordId, values []C) {
	if len(values) != o.size {
		o.Resize(len(values))
	}
	copy(o.WriteCoords(id), values)
	if id == RestPosition {
		o.generation++
	}
}

// SetDerivs copies values into the derivatives vector with given id
func (o *MechanicalState[C, D]) SetDerivs(id DerivId, values []D) (err error) {
	if len(values) != o.size {
		return chk.Err("cannot set derivatives of state %q: size mismatch %d != %d", o.name, len(values), o.size)
	}
	copy(o.WriteDerivs(id), values)
	return
}

// ResetDerivs zeroes the derivatives vector with given id
func (o *MechanicalState[C, D]) ResetDerivs(id DerivId) {
	var zero D
	v := o.WriteDerivs(id)
	for i := range v {
		v[i] = zero
	}
}

// CoordValues returns a copy of the coordinates vector with given id as [ndof][ncoord] scalars
func (o *MechanicalState[C, D]) CoordValues(id CoordId) (vals [][]float64, err error) {
	v, err := o.ReadCoords(id)
	if err != nil {
		return
	}
	vals = make([][]float64, len(v))
	for i := range v {
		vals[i] = append([]float64{}, o.types.Coord(&v[i])...)
	}
	return
}

// SetCoordValues copies [ndof][ncoord] scalars into the coordinates vector with given id
func (o *MechanicalState[C, D]) SetCoordValues(id CoordId, vals [][]float64) (err error) {
	if len(vals) != o.size {
		return chk.Err("cannot set coordinates of state %q: size mismatch %d != %d", o.name, len(vals), o.size)
	}
	v := make([]C, len(vals))
	for i := range vals {
		c := o.types.Coord(&v[i])
		if len(vals[i]) != len(c) {
			return chk.Err("cannot set coordinates of state %q: DOF # %d must have %d components; %d given", o.name, i, len(c), len(vals[i]))
		}
		copy(c, vals[i])
	}
	o.SetCoords(id, v)
	return
}

// DerivValues returns a copy of the derivatives vector with given id as [ndof][nderiv] scalars
func (o *MechanicalState[C, D]) DerivValues(id DerivId) (vals [][]float64, err error) {
	v, err := o.ReadDerivs(id)
	if err != nil {
		return
	}
	vals = make([][]float64, len(v))
	for i := range v {
		vals[i] = append([]float64{}, o.types.Deriv(&v[i])...)
	}
	return
}

// AllocDeriv allocates an auxiliary vector of derivatives (zeroed) and returns its id
func (o *MechanicalState[C, D]) AllocDeriv() (id DerivId) {
	id = o.nextDeriv
	o.nextDeriv++
	o.derivs[id] = make([]D, o.size)
	return
}

// FreeDeriv releases an auxiliary vector of derivatives
func (o *MechanicalState[C, D]) FreeDeriv(id DerivId) {
	if id < firstAuxDeriv {
		chk.Panic("cannot free default derivatives vector %d of state %q", id, o.name)
	}
	delete(o.derivs, id)
}

// resize returns a slice with n entries keeping the existent values
func resize[T any](v []T, n int) []T {
	if len(v) == n {
		return v
	}
	if cap(v) >= n {
		w := v[:n]
		var zero T
		for i := len(v); i < n; i++ {
			w[i] = zero
		}
		return w
	}
	w := make([]T, n)
	copy(w, v)
	return w
}
