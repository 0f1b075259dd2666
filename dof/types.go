// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package dof implements descriptors for the families of degrees of freedom
package dof

// Kind identifies a family of degrees of freedom
type Kind int

// kinds of DOFs
const (
	KindVec1   Kind = iota // 1D points
	KindVec2               // 2D points
	KindVec3               // 3D points
	KindVec6               // 6D vectors
	KindRigid2             // 2D rigid bodies: (x, y, θ)
	KindRigid3             // 3D rigid bodies: (x, y, z) and quaternion
)

// String returns the datatype name; e.g. "Vec3d"
func (k Kind) String() string {
	switch k {
	case KindVec1:
		return "Vec1d"
	case KindVec2:
		return "Vec2d"
	case KindVec3:
		return "Vec3d"
	case KindVec6:
		return "Vec6d"
	case KindRigid2:
		return "Rigid2d"
	case KindRigid3:
		return "Rigid3d"
	}
	return "unknown"
}

// KindFromName returns the kind corresponding to a datatype name
func KindFromName(name string) (kind Kind, ok bool) {
	for k := KindVec1; k <= KindRigid3; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return
}

// Types defines what all DOF descriptors must provide
//  C -- coordinate type (position)
//  D -- derivative type (velocity, force, displacement)
type Types[C, D any] interface {
	Kind() Kind           // identity of this family
	Name() string         // datatype name; e.g. "Vec3d"
	CoordSize() int       // number of scalars in one coordinate
	DerivSize() int       // number of scalars in one derivative == block size S in assembled matrices
	SpatialDim() int      // number of leading translational components
	Coord(c *C) []float64 // view of the scalars of c (aliasing)
	Deriv(d *D) []float64 // view of the scalars of d (aliasing)
}

// coordinates and derivatives
type (
	Vec1        [1]float64
	Vec2        [2]float64
	Vec3        [3]float64
	Vec6        [6]float64
	Rigid2Coord [3]float64 // x, y, θ
	Rigid3Coord [7]float64 // x, y, z, qx, qy, qz, qw
)

// Vec1Types describes 1D point DOFs
type Vec1Types struct{}

func (Vec1Types) Kind() Kind { return KindVec1 }
func (Vec1Types) Name() string { return KindVec1.String() }
func (Vec1Types) CoordSize() int { return 1 }
func (Vec1Types) DerivSize() int { return 1 }
func (Vec1Types) SpatialDim() int { return 1 }
func (Vec1Types) Coord(c *Vec1) []float64 { return c[:] }
func (Vec1Types) Deriv(d *Vec1) []float64 { return d[:] }

// Vec2Types describes 2D point DOFs
type Vec2Types struct{}

func (Vec2Types) Kind() Kind { return KindVec2 }
func (Vec2Types) Name() string { return KindVec2.String() }
func (Vec2Types) CoordSize() int { return 2 }
func (Vec2Types) DerivSize() int { return 2 }
func (Vec2Types) SpatialDim() int { return 2 }
func (Vec2Types) Coord(c *Vec2) []float64 { return c[:] }
func (Vec2Types) Deriv(d *Vec2) []float64 { return d[:] }

// Vec3Types describes 3D point DOFs
type Vec3Types struct{}

func (Vec3Types) Kind() Kind { return KindVec3 }
func (Vec3Types) Name() string { return KindVec3.String() }
func (Vec3Types) CoordSize() int { return 3 }
func (Vec3Types) DerivSize() int { return 3 }
func (Vec3Types) SpatialDim() int { return 3 }
func (Vec3Types) Coord(c *Vec3) []float64 { return c[:] }
func (Vec3Types) Deriv(d *Vec3) []float64 { return d[:] }

// Vec6Types describes 6D vector DOFs
type Vec6Types struct{}

func (Vec6Types) Kind() Kind { return KindVec6 }
func (Vec6Types) Name() string { return KindVec6.String() }
func (Vec6Types) CoordSize() int { return 6 }
func (Vec6Types) DerivSize() int { return 6 }
func (Vec6Types) SpatialDim() int { return 6 }
func (Vec6Types) Coord(c *Vec6) []float64 { return c[:] }
func (Vec6Types) Deriv(d *Vec6) []float64 { return d[:] }

// Rigid2Types describes planar rigid bodies. Derivatives are (vx, vy, ω)
type Rigid2Types struct{}

func (Rigid2Types) Kind() Kind { return KindRigid2 }
func (Rigid2Types) Name() string { return KindRigid2.String() }
func (Rigid2Types) CoordSize() int { return 3 }
func (Rigid2Types) DerivSize() int { return 3 }
func (Rigid2Types) SpatialDim() int { return 2 }
func (Rigid2Types) Coord(c *Rigid2Coord) []float64 { return c[:] }
func (Rigid2Types) Deriv(d *Vec3) []float64 { return d[:] }

// Rigid3Types describes spatial rigid bodies. Derivatives are (v, ω)
type Rigid3Types struct{}

func (Rigid3Types) Kind() Kind { return KindRigid3 }
func (Rigid3Types) Name() string { return KindRigid3.String() }
func (Rigid3Types) CoordSize() int { return 7 }
func (Rigid3Types) DerivSize() int { return 6 }
func (Rigid3Types) SpatialDim() int { return 3 }
func (Rigid3Types) Coord(c *Rigid3Coord) []float64 { return c[:] }
func (Rigid3Types) Deriv(d *Vec6) []float64 { return d[:] }
