// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ff implements the force contribution protocol: force models add forces, force
// derivatives and stiffness/damping blocks into vectors of a mechanical state and into a
// global matrix shared by many models
package ff

import (
	"errors"

	"github.com/cpmech/gomech/mst"
)

// ErrNotImplemented is returned by optional operations not supported by a model
var ErrNotImplemented = errors.New("operation not implemented by force model")

// Model defines what all force models must compute
type Model[C, D any] interface {
	ComputesForce[C, D]
	ComputesForceDerivative[C, D]
}

// ComputesForce defines models computing forces: f += f(x, v)
type ComputesForce[C, D any] interface {
	AddForceTo(p *Params, f []D, x []C, v []D) // adds the contribution of this model to f
}

// ComputesForceDerivative defines models computing: df += KFactor K dx + BFactor B dx
type ComputesForceDerivative[C, D any] interface {
	AddDForceTo(p *Params, df []D, dx []D) // adds the directional derivative to df
}

// HasPotentialEnergy defines conservative models
type HasPotentialEnergy[C any] interface {
	PotentialEnergyOf(p *Params, x []C) float64 // returns the potential energy at x
}

// AssemblesMatrix defines models that assemble K and B into global matrices
type AssemblesMatrix interface {
	AddKTo(m Matrix, kFact float64, offset int) // adds kFact * K to m starting at offset
	AddBTo(m Matrix, bFact float64, offset int) // adds bFact * B to m starting at offset
	MatrixNnz() int                             // maximum number of calls to m.Add in AddKTo or AddBTo
}

// SupportsComplianceMultiply defines models that can be treated as constraints
type SupportsComplianceMultiply[D any] interface {
	AddClambdaTo(p *Params, res []D, lambda []D, cFactor float64) // res += cFactor * C * λ
}

// MasksForce defines models acting on a subset of DOFs only
type MasksForce interface {
	FillForceMask(m *mst.Mask) // inserts the DOFs touched by this model
}

// Capabilities tells which optional operations a model supports
type Capabilities struct {
	Energy     bool // HasPotentialEnergy
	Matrix     bool // AssemblesMatrix
	Compliance bool // SupportsComplianceMultiply
	Mask       bool // MasksForce
}

// BaseForceField defines what the orchestrator calls; it does not depend on the DOF family
type BaseForceField interface {

	// information
	Name() string               // name of force field
	State() mst.Base            // the mechanical state this force field acts upon
	Capabilities() Capabilities // optional operations supported by the model

	// vectors
	AddForce(p *Params, f mst.DerivId) (err error)                              // f += f(x, v)
	AddDForce(p *Params, df mst.DerivId) (err error)                            // df += kFactor K dx + bFactor B dx
	AddClambda(p *Params, res, lambda mst.DerivId, cFactor float64) (err error) // res += cFactor C λ
	PotentialEnergy(p *Params) float64                                          // energy at current positions
	UpdateForceMask()                                                           // marks DOFs in use

	// matrices
	AddKToMatrix(p *Params, acc MatrixAccessor) (err error)               // assembles kFactor K
	AddBToMatrix(p *Params, acc MatrixAccessor) (err error)               // assembles bFactor B
	AddSubKToMatrix(p *Params, acc MatrixAccessor, sub []int) (err error) // assembles kFactor K touching the sub nodes only
	AddSubBToMatrix(p *Params, acc MatrixAccessor, sub []int) (err error) // assembles bFactor B touching the sub nodes only
	MatrixNnz() int                                                       // upper bound of entries added by one assembly; 0 if not assembling
}
