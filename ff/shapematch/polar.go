// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapematch

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// SingularTol is the relative tolerance below which singular values are taken as zero
const SingularTol = 1e-10

// Mat3 is a 3×3 matrix
type Mat3 [3][3]float64

// Identity returns the 3×3 identity matrix
func Identity() (m Mat3) {
	m[0][0], m[1][1], m[2][2] = 1, 1, 1
	return
}

// Apply returns m·v
func (m *Mat3) Apply(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// AddOuter adds w·a⊗b to m
func (m *Mat3) AddOuter(w float64, a, b r3.Vec) {
	u, v := [3]float64{a.X, a.Y, a.Z}, [3]float64{b.X, b.Y, b.Z}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] += w * u[i] * v[j]
		}
	}
}

// Mul returns a·b
func Mul(a, b Mat3) (c Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				c[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return
}

// Blend returns (1-α)·a + α·b
func Blend(a, b Mat3, α float64) (c Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = (1-α)*a[i][j] + α*b[i][j]
		}
	}
	return
}

// PseudoInverse computes the Moore-Penrose inverse of q using its singular value decomposition.
// Singular values smaller than SingularTol·σmax are discarded. rank == 0 means q is null (or the
// decomposition failed) and qinv is not computed
func PseudoInverse(q Mat3) (qinv Mat3, rank int) {
	u, σ, v, ok := svd(q)
	if !ok || σ[0] <= 0 {
		return
	}
	for k := 0; k < 3; k++ {
		if σ[k] <= SingularTol*σ[0] {
			continue
		}
		rank++
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				qinv[i][j] += v.At(i, k) * u.At(j, k) / σ[k]
			}
		}
	}
	return
}

// Rotation returns the rotation R of the polar decomposition t = R·S, computed from the singular
// value decomposition t = U·Σ·Vᵀ as R = U·Vᵀ. Reflections are removed by flipping the singular
// direction associated with the smallest singular value. The identity is returned if the
// decomposition fails
func Rotation(t Mat3) (r Mat3) {
	u, _, v, ok := svd(t)
	if !ok {
		return Identity()
	}
	var uv mat.Dense
	uv.Mul(u, v.T())
	if mat.Det(&uv) < 0 {
		for i := 0; i < 3; i++ {
			u.Set(i, 2, -u.At(i, 2))
		}
		uv.Mul(u, v.T())
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = uv.At(i, j)
		}
	}
	return
}

// svd computes a = U·Σ·Vᵀ with singular values in decreasing order
func svd(a Mat3) (u *mat.Dense, σ []float64, v *mat.Dense, ok bool) {
	data := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		data = append(data, a[i][:]...)
	}
	var dec mat.SVD
	if ok = dec.Factorize(mat.NewDense(3, 3, data), mat.SVDFull); !ok {
		return
	}
	u, v = new(mat.Dense), new(mat.Dense)
	dec.UTo(u)
	dec.VTo(v)
	σ = dec.Values(nil)
	return
}
