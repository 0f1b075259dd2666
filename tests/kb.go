// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tests

import (
	"testing"

	"github.com/cpmech/gomech/asm"
	"github.com/cpmech/gomech/ff"
	"github.com/cpmech/gomech/mst"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/diff/fd"
)

// Kb helps on checking K and B matrices of force fields using numerical derivatives.
// Only states with the same number of coordinates and derivatives per DOF can be checked
type Kb struct {

	// input (must)
	Tst    *testing.T // testing structure
	Tol    float64    // tolerance to compare K's
	Step   float64    // step for finite differences method
	Verb   bool       // verbose: show results
	Ni, Nj int        // number of i and j components of K to be tested; 0 or -1 means all K components
}

// CheckK compares the matrix assembled by AddKToMatrix (kFactor = 1) with ∂f/∂x
func CheckK[C, D any](o *Kb, label string, f ff.BaseForceField, ms *mst.MechanicalState[C, D]) {
	p := ff.DefaultParams()
	vzero := ms.AllocDeriv()
	defer ms.FreeDeriv(vzero)
	p.V = vzero
	x := ms.WriteCoords(p.X)
	check(o, label, f, ms, p, func(node int) []float64 { return ms.Types().Coord(&x[node]) }, f.AddKToMatrix)
}

// CheckB compares the matrix assembled by AddBToMatrix (bFactor = 1) with ∂f/∂v
func CheckB[C, D any](o *Kb, label string, f ff.BaseForceField, ms *mst.MechanicalState[C, D]) {
	p := ff.DefaultParams()
	p.KFactor, p.BFactor = 0, 1
	v := ms.WriteDerivs(p.V)
	check(o, label, f, ms, p, func(node int) []float64 { return ms.Types().Deriv(&v[node]) }, f.AddBToMatrix)
}

// CheckEnergy compares -∂E/∂x with the forces computed with zero velocities
func CheckEnergy[C, D any](o *Kb, label string, f ff.BaseForceField, ms *mst.MechanicalState[C, D]) {
	o.setDefault()
	p := ff.DefaultParams()
	vzero := ms.AllocDeriv()
	fana := ms.AllocDeriv()
	defer func() {
		ms.FreeDeriv(vzero)
		ms.FreeDeriv(fana)
	}()
	p.V = vzero
	err := f.AddForce(p, fana)
	if err != nil {
		chk.Panic("testing: CheckEnergy: AddForce failed:\n%v", err)
	}
	fvals, _ := ms.ReadDerivs(fana)
	x := ms.WriteCoords(p.X)
	S := ms.BlockSize()
	for J := 0; J < ms.Size()*S; J++ {
		xJ := ms.Types().Coord(&x[J/S])
		fJ := ms.Types().Deriv(&fvals[J/S])
		dnum := o.deriv(xJ[J%S], func(s float64) float64 {
			tmp := xJ[J%S]
			xJ[J%S] = s
			e := f.PotentialEnergy(p)
			xJ[J%S] = tmp
			return e
		})
		chk.AnaNum(o.Tst, io.Sf(label+"%3d", J), o.Tol, -fJ[J%S], dnum, o.Verb)
	}
}

// CheckDForce compares AddDForce with the product of the assembled matrices by dx
func CheckDForce[C, D any](o *Kb, label string, f ff.BaseForceField, ms *mst.MechanicalState[C, D], kFactor, bFactor float64) {
	o.setDefault()
	p := ff.DefaultParams()
	p.KFactor, p.BFactor = kFactor, bFactor

	// dx
	S, n := ms.BlockSize(), ms.Size()*ms.BlockSize()
	dx := ms.WriteDerivs(p.Dx)
	dxvals := make([]float64, n)
	for J := 0; J < n; J++ {
		dxvals[J] = 0.1 * float64(J%7-3)
		ms.Types().Deriv(&dx[J/S])[J%S] = dxvals[J]
	}

	// df
	df := ms.AllocDeriv()
	defer ms.FreeDeriv(df)
	err := f.AddDForce(p, df)
	if err != nil {
		chk.Panic("testing: CheckDForce: AddDForce failed:\n%v", err)
	}
	dfvals, _ := ms.ReadDerivs(df)

	// (kFactor K + bFactor B) dx
	m := asm.NewDenseMatrix(n)
	acc := asm.NewAccessor(ms)
	acc.Matrix = m
	if err = f.AddKToMatrix(p, acc); err != nil && err != ff.ErrNotImplemented {
		chk.Panic("testing: CheckDForce: AddKToMatrix failed:\n%v", err)
	}
	if err = f.AddBToMatrix(p, acc); err != nil && err != ff.ErrNotImplemented {
		chk.Panic("testing: CheckDForce: AddBToMatrix failed:\n%v", err)
	}
	for I := 0; I < n; I++ {
		var sum float64
		for J := 0; J < n; J++ {
			sum += m.D.At(I, J) * dxvals[J]
		}
		chk.AnaNum(o.Tst, io.Sf(label+"%3d", I), o.Tol, ms.Types().Deriv(&dfvals[I/S])[I%S], sum, o.Verb)
	}
}

// setDefault sets default values
func (o *Kb) setDefault() {
	if o.Step < 1e-14 {
		o.Step = 1e-6
	}
}

// deriv computes df/dx @ x with central differences
func (o *Kb) deriv(x float64, f func(x float64) float64) float64 {
	return fd.Derivative(f, x, &fd.Settings{Formula: fd.Central, Step: o.Step})
}

// check performs the checking of a matrix using numerical derivatives of the forces with respect
// to the scalars returned by vals
func check[C, D any](o *Kb, label string, f ff.BaseForceField, ms *mst.MechanicalState[C, D], p *ff.Params,
	vals func(node int) []float64, assemble func(p *ff.Params, acc ff.MatrixAccessor) error) {

	// forces are computed first to update the linearisation
	o.setDefault()
	S, n := ms.BlockSize(), ms.Size()*ms.BlockSize()
	fnum := ms.AllocDeriv()
	defer ms.FreeDeriv(fnum)
	err := f.AddForce(p, fnum)
	if err != nil {
		chk.Panic("testing: check: AddForce failed:\n%v", err)
	}

	// analytical matrix
	m := asm.NewDenseMatrix(n)
	acc := asm.NewAccessor(ms)
	acc.Matrix = m
	if err = assemble(p, acc); err != nil {
		chk.Panic("testing: check: cannot assemble %s:\n%v", label, err)
	}

	// numerical derivatives
	ni, nj := n, n
	if o.Ni > 0 && o.Ni < n {
		ni = o.Ni
	}
	if o.Nj > 0 && o.Nj < n {
		nj = o.Nj
	}
	for I := 0; I < ni; I++ {
		for J := 0; J < nj; J++ {
			xJ := vals(J / S)
			dnum := o.deriv(xJ[J%S], func(s float64) float64 {
				tmp := xJ[J%S]
				xJ[J%S] = s
				ms.ResetDerivs(fnum)
				err := f.AddForce(p, fnum)
				xJ[J%S] = tmp
				if err != nil {
					chk.Panic("testing: check: AddForce failed:\n%v", err)
				}
				fvals, _ := ms.ReadDerivs(fnum)
				return ms.Types().Deriv(&fvals[I/S])[I%S]
			})
			chk.AnaNum(o.Tst, io.Sf(label+"%3d%3d", I, J), o.Tol, m.D.At(I, J), dnum, o.Verb)
		}
	}

	// restore linearisation
	ms.ResetDerivs(fnum)
	f.AddForce(p, fnum)
}
