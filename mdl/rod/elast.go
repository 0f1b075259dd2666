// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rod

import "github.com/cpmech/gosl/chk"

// LinElast implements a linear elastic (and linear viscous) model for rods
type LinElast struct {
	E   float64 // Young's modulus
	A   float64 // cross-sectional area
	Eta float64 // axial viscosity
}

// add model to factory
func init() {
	allocators["rod-elast"] = func() Model { return new(LinElast) }
}

// Init initialises model
func (o *LinElast) Init(prms map[string]float64) (err error) {
	for key, val := range prms {
		switch key {
		case "E":
			o.E = val
		case "A":
			o.A = val
		case "eta":
			o.Eta = val
		default:
			return chk.Err("rod-elast: parameter named %q is incorrect", key)
		}
	}
	if o.E < 0 || o.A <= 0 || o.Eta < 0 {
		return chk.Err("rod-elast: invalid parameters: E=%g A=%g eta=%g", o.E, o.A, o.Eta)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o LinElast) GetPrms() map[string]float64 {
	return map[string]float64{
		"E":   2.0000e+08,
		"A":   1.0000e-02,
		"eta": 0,
	}
}

// Stiffness returns E A / L0
func (o LinElast) Stiffness(L0 float64) float64 {
	if L0 <= 0 {
		chk.Panic("rod-elast: rest length must be positive; L0=%g is invalid", L0)
	}
	return o.E * o.A / L0
}

// Damping returns η A / L0
func (o LinElast) Damping(L0 float64) float64 {
	if L0 <= 0 {
		chk.Panic("rod-elast: rest length must be positive; L0=%g is invalid", L0)
	}
	return o.Eta * o.A / L0
}
