// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ff

import "github.com/cpmech/gomech/mst"

// Params holds the mechanical parameters given by the time integrator
//
//   df = KFactor * K * dx + BFactor * B * dx
//
type Params struct {

	// integration
	KFactor float64 // stiffness factor
	BFactor float64 // damping factor

	// selected vectors
	X  mst.CoordId // positions to read
	V  mst.DerivId // velocities to read
	Dx mst.DerivId // displacements to read in AddDForce
}

// DefaultParams returns parameters selecting the default vectors with KFactor = 1
func DefaultParams() *Params {
	return &Params{
		KFactor: 1,
		X:       mst.Position,
		V:       mst.Velocity,
		Dx:      mst.Dx,
	}
}
