// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package asm implements global matrices and the offsets of mechanical states within them
package asm

import (
	"github.com/cpmech/gomech/ff"
	"github.com/cpmech/gomech/mst"
	"github.com/cpmech/gosl/chk"
)

// Accessor gives the position of each state in one global matrix.
// States are placed in the order they were added
type Accessor struct {
	Matrix  ff.Matrix        // global matrix
	offsets map[mst.Base]int // state => first row/col
	states  []mst.Base       // states in order
	size    int              // total number of rows/cols
}

// NewAccessor returns an accessor placing states one after another
func NewAccessor(states ...mst.Base) (o *Accessor) {
	o = &Accessor{offsets: make(map[mst.Base]int)}
	for _, ms := range states {
		o.AddState(ms)
	}
	return
}

// AddState places a state after the previous ones. Adding the same state twice is a programming error
func (o *Accessor) AddState(ms mst.Base) {
	if _, ok := o.offsets[ms]; ok {
		chk.Panic("state %q has been added to accessor already", ms.Name())
	}
	o.offsets[ms] = o.size
	o.states = append(o.states, ms)
	o.size += ms.Size() * ms.BlockSize()
}

// Size returns the number of rows (or columns) of the global matrix
func (o *Accessor) Size() int {
	return o.size
}

// Offset returns the first row/col of a state
func (o *Accessor) Offset(ms mst.Base) (offset int, ok bool) {
	offset, ok = o.offsets[ms]
	return
}

// States returns the states in the order they appear in the matrix
func (o *Accessor) States() []mst.Base {
	return o.states
}

// GetMatrix returns the global matrix and the offset of ms
func (o *Accessor) GetMatrix(ms mst.Base) (ref ff.MatrixRef, err error) {
	offset, ok := o.offsets[ms]
	if !ok {
		return ref, chk.Err("state %q is not part of the global matrix", ms.Name())
	}
	if o.Matrix == nil {
		return ref, chk.Err("global matrix has not been set")
	}
	return ff.MatrixRef{Matrix: o.Matrix, Offset: offset}, nil
}
