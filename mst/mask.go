// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mst

// Mask holds the subset of DOFs in use by the force models of a state.
// When the mask is not activated, every DOF is considered in use
type Mask struct {
	entries   []bool // [ndof] flags
	activated bool   // whether downstream consumers should honour the flags
}

// Assign resizes the mask and sets all entries to value
func (o *Mask) Assign(n int, value bool) {
	if cap(o.entries) >= n {
		o.entries = o.entries[:n]
	} else {
		o.entries = make([]bool, n)
	}
	for i := range o.entries {
		o.entries[i] = value
	}
}

// Clear unmarks all entries
func (o *Mask) Clear() {
	o.Assign(len(o.entries), false)
}

// Insert marks DOF i as in use. Out-of-range indices are ignored
func (o *Mask) Insert(i int) {
	if i >= 0 && i < len(o.entries) {
		o.entries[i] = true
	}
}

// Activate switches the use of the mask on or off
func (o *Mask) Activate(on bool) {
	o.activated = on
}

// IsActivated tells whether the mask is in use
func (o *Mask) IsActivated() bool {
	return o.activated
}

// Size returns the number of entries
func (o *Mask) Size() int {
	return len(o.entries)
}

// Entry tells whether DOF i is in use
func (o *Mask) Entry(i int) bool {
	if !o.activated {
		return true
	}
	if i < 0 || i >= len(o.entries) {
		return false
	}
	return o.entries[i]
}

// Indices returns the DOFs in use
func (o *Mask) Indices() (ids []int) {
	for i := range o.entries {
		if o.Entry(i) {
			ids = append(ids, i)
		}
	}
	return
}

// Count returns the number of DOFs in use
func (o *Mask) Count() (n int) {
	for i := range o.entries {
		if o.Entry(i) {
			n++
		}
	}
	return
}
