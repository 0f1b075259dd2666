// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dof

import "math"

// Center returns the translational part of a coordinate as a 3D point.
// Missing components (1D and 2D families) are zero
func Center[C, D any](types Types[C, D], c *C) (p Vec3) {
	s := types.Coord(c)
	n := types.SpatialDim()
	if n > 3 {
		n = 3
	}
	for i := 0; i < n; i++ {
		p[i] = s[i]
	}
	return
}

// SetCenter sets the translational part of a coordinate; other components are kept
func SetCenter[C, D any](types Types[C, D], c *C, p Vec3) {
	s := types.Coord(c)
	n := types.SpatialDim()
	if n > 3 {
		n = 3
	}
	for i := 0; i < n; i++ {
		s[i] = p[i]
	}
}

// Quat returns the orientation of a 3D rigid coordinate
func (o Rigid3Coord) Quat() [4]float64 {
	return [4]float64{o[3], o[4], o[5], o[6]}
}

// Normalize normalises the quaternion of a 3D rigid coordinate.
// A null quaternion is replaced by the identity
func (o *Rigid3Coord) Normalize() {
	n := math.Sqrt(o[3]*o[3] + o[4]*o[4] + o[5]*o[5] + o[6]*o[6])
	if n < 1e-15 {
		o[3], o[4], o[5], o[6] = 0, 0, 0, 1
		return
	}
	for i := 3; i < 7; i++ {
		o[i] /= n
	}
}

// NewRigid3Coord returns a rigid coordinate at p with identity orientation
func NewRigid3Coord(p Vec3) Rigid3Coord {
	return Rigid3Coord{p[0], p[1], p[2], 0, 0, 0, 1}
}
