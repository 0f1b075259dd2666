// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rod implements material models for one-dimensional structural members (rods and springs)
package rod

import "github.com/cpmech/gosl/chk"

// Model defines the interface for rod models
type Model interface {
	Init(prms map[string]float64) error // initialises model
	GetPrms() map[string]float64        // gets (an example) of parameters
	Stiffness(L0 float64) float64       // returns the axial stiffness of a member with rest length L0
	Damping(L0 float64) float64         // returns the axial damping of a member with rest length L0
}

// New returns new rod model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'rod' database", name)
	}
	return allocator(), nil
}

// allocators holds all available rod models; modelname => allocator
var allocators = map[string]func() Model{}
