// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ff

import (
	"github.com/cpmech/gomech/mst"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// ForceField connects a force model to its mechanical state. It fetches the vectors selected
// by the mechanical parameters, calls the model and resolves global matrix offsets
type ForceField[C, D any] struct {
	name  string
	state *mst.MechanicalState[C, D]
	model Model[C, D]

	// capabilities of model
	energy     HasPotentialEnergy[C]
	assembler  AssemblesMatrix
	compliance SupportsComplianceMultiply[D]
	masker     MasksForce

	// diagnostics already reported
	reported map[string]bool
}

// NewForceField returns a new force field acting upon state
func NewForceField[C, D any](name string, state *mst.MechanicalState[C, D], model Model[C, D]) (o *ForceField[C, D]) {
	if state == nil {
		chk.Panic("force field %q requires a mechanical state", name)
	}
	o = &ForceField[C, D]{name: name, state: state, model: model, reported: make(map[string]bool)}
	o.energy, _ = model.(HasPotentialEnergy[C])
	o.assembler, _ = model.(AssemblesMatrix)
	o.compliance, _ = model.(SupportsComplianceMultiply[D])
	o.masker, _ = model.(MasksForce)
	return
}

// Name returns the name of force field
func (o *ForceField[C, D]) Name() string { return o.name }

// State returns the mechanical state
func (o *ForceField[C, D]) State() mst.Base { return o.state }

// Capabilities returns the optional operations supported by the model
func (o *ForceField[C, D]) Capabilities() Capabilities {
	return Capabilities{
		Energy:     o.energy != nil,
		Matrix:     o.assembler != nil,
		Compliance: o.compliance != nil,
		Mask:       o.masker != nil,
	}
}

// MechanicalState returns the typed mechanical state
func (o *ForceField[C, D]) MechanicalState() *mst.MechanicalState[C, D] { return o.state }

// Model returns the force model
func (o *ForceField[C, D]) Model() Model[C, D] { return o.model }

// AddForce adds the forces of this model to the vector fId. Positions and velocities are
// selected by p.X and p.V. The force mask is updated afterwards
func (o *ForceField[C, D]) AddForce(p *Params, fId mst.DerivId) (err error) {
	x, err := o.state.ReadCoords(p.X)
	if err != nil {
		return chk.Err("%s: cannot read positions:\n%v", o.name, err)
	}
	v, err := o.state.ReadDerivs(p.V)
	if err != nil {
		return chk.Err("%s: cannot read velocities:\n%v", o.name, err)
	}
	o.model.AddForceTo(p, o.state.WriteDerivs(fId), x, v)
	o.UpdateForceMask()
	return
}

// AddDForce adds kFactor K dx + bFactor B dx to the vector dfId; dx is selected by p.Dx
func (o *ForceField[C, D]) AddDForce(p *Params, dfId mst.DerivId) (err error) {
	dx, err := o.state.ReadDerivs(p.Dx)
	if err != nil {
		return chk.Err("%s: cannot read displacements:\n%v", o.name, err)
	}
	o.model.AddDForceTo(p, o.state.WriteDerivs(dfId), dx)
	return
}

// AddClambda adds cFactor C λ to res. Models that cannot be treated as constraints leave res untouched
func (o *ForceField[C, D]) AddClambda(p *Params, resId, lambdaId mst.DerivId, cFactor float64) (err error) {
	if o.compliance == nil {
		o.report("addClambda")
		return ErrNotImplemented
	}
	lambda, err := o.state.ReadDerivs(lambdaId)
	if err != nil {
		return chk.Err("%s: cannot read multipliers:\n%v", o.name, err)
	}
	o.compliance.AddClambdaTo(p, o.state.WriteDerivs(resId), lambda, cFactor)
	return
}

// PotentialEnergy returns the energy at positions p.X. Zero is returned by models without energy
func (o *ForceField[C, D]) PotentialEnergy(p *Params) float64 {
	if o.energy == nil {
		o.report("getPotentialEnergy")
		return 0
	}
	x, err := o.state.ReadCoords(p.X)
	if err != nil {
		io.Pfred("%s: cannot read positions:\n%v\n", o.name, err)
		return 0
	}
	return o.energy.PotentialEnergyOf(p, x)
}

// UpdateForceMask marks the DOFs in use. All DOFs are marked unless the model acts on a subset
func (o *ForceField[C, D]) UpdateForceMask() {
	mask := o.state.ForceMask()
	if mask.Size() != o.state.Size() {
		mask.Assign(o.state.Size(), false)
	}
	if o.masker != nil {
		o.masker.FillForceMask(mask)
		return
	}
	mask.Assign(o.state.Size(), true)
}

// AddKToMatrix assembles kFactor K into the global matrix given by acc
func (o *ForceField[C, D]) AddKToMatrix(p *Params, acc MatrixAccessor) (err error) {
	return o.assemble(acc, nil, func(m Matrix, offset int) { o.assembler.AddKTo(m, p.KFactor, offset) })
}

// AddBToMatrix assembles bFactor B into the global matrix given by acc
func (o *ForceField[C, D]) AddBToMatrix(p *Params, acc MatrixAccessor) (err error) {
	return o.assemble(acc, nil, func(m Matrix, offset int) { o.assembler.AddBTo(m, p.BFactor, offset) })
}

// AddSubKToMatrix assembles the entries of kFactor K in rows or columns of the nodes in sub
func (o *ForceField[C, D]) AddSubKToMatrix(p *Params, acc MatrixAccessor, sub []int) (err error) {
	return o.assemble(acc, sub, func(m Matrix, offset int) { o.assembler.AddKTo(m, p.KFactor, offset) })
}

// AddSubBToMatrix assembles the entries of bFactor B in rows or columns of the nodes in sub
func (o *ForceField[C, D]) AddSubBToMatrix(p *Params, acc MatrixAccessor, sub []int) (err error) {
	return o.assemble(acc, sub, func(m Matrix, offset int) { o.assembler.AddBTo(m, p.BFactor, offset) })
}

// MatrixNnz returns the maximum number of entries added by one assembly
func (o *ForceField[C, D]) MatrixNnz() int {
	if o.assembler == nil {
		return 0
	}
	return o.assembler.MatrixNnz()
}

// assemble resolves the matrix of this state and calls fcn
func (o *ForceField[C, D]) assemble(acc MatrixAccessor, sub []int, fcn func(m Matrix, offset int)) (err error) {
	if o.assembler == nil {
		o.report("addKToMatrix/addBToMatrix")
		return ErrNotImplemented
	}
	ref, err := acc.GetMatrix(o.state)
	if err != nil {
		return chk.Err("%s: cannot get global matrix:\n%v", o.name, err)
	}
	if ref.Matrix == nil {
		return // state not in this matrix
	}
	m := ref.Matrix
	if sub != nil {
		m = newSubMatrix(m, ref.Offset, o.state.BlockSize(), sub)
	}
	fcn(m, ref.Offset)
	return
}

// report prints a "not implemented" diagnostic once per operation
func (o *ForceField[C, D]) report(operation string) {
	if o.reported[operation] {
		return
	}
	o.reported[operation] = true
	if io.Verbose {
		io.Pfyel("%s: %s is not implemented by this force model\n", o.name, operation)
	}
}
