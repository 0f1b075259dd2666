// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mech implements the orchestrator calling force fields on mechanical states:
// accumulation of forces, force derivatives, energies and global matrices
package mech

import (
	"github.com/cpmech/gomech/asm"
	"github.com/cpmech/gomech/ff"
	"github.com/cpmech/gomech/inp"
	"github.com/cpmech/gomech/mst"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// System holds mechanical states and the force fields acting upon them.
// Force fields are called in the order they were added
type System struct {

	// data
	Verbose     bool                // show messages
	States      []mst.Base          // states in order of creation
	ForceFields []ff.BaseForceField // all force fields in order of creation

	// subsets of force fields
	FfEnergy     []ff.BaseForceField // force fields with potential energy
	FfMatrix     []ff.BaseForceField // force fields assembling K and B
	FfCompliance []ff.BaseForceField // force fields usable as compliant constraints
	FfMasked     []ff.BaseForceField // force fields acting on a subset of DOFs

	// dimensions
	NnzK int // upper bound of number of entries added to K (or B) by all force fields
	Ny   int // total number of scalars of all states; updated by AddState and assembly

	// auxiliary
	name2state map[string]mst.Base
	name2ff    map[string]ff.BaseForceField
}

// NewSystem returns a new empty system
func NewSystem(verbose bool) (o *System) {
	return &System{
		Verbose:    verbose,
		name2state: make(map[string]mst.Base),
		name2ff:    make(map[string]ff.BaseForceField),
	}
}

// Build allocates a system with all states and force fields of a scene
func Build(scene *inp.Scene) (o *System, err error) {
	o = NewSystem(scene.Data.Verbose)
	for _, sd := range scene.States {
		ms, err := NewState(sd)
		if err != nil {
			return nil, err
		}
		if err = o.AddState(ms); err != nil {
			return nil, err
		}
	}
	for _, fd := range scene.ForceFields {
		if _, err = o.AddForceField(fd.Type, fd.Name, fd.State, fd); err != nil {
			return nil, err
		}
	}
	return
}

// Params returns the mechanical parameters of a scene selecting the default vectors
func Params(scene *inp.Scene) (p *ff.Params) {
	p = ff.DefaultParams()
	p.KFactor = scene.Params.KFactor
	p.BFactor = scene.Params.BFactor
	return
}

// AddState adds a state. Names must be unique
func (o *System) AddState(ms mst.Base) (err error) {
	if _, ok := o.name2state[ms.Name()]; ok {
		return chk.Err("state %q exists already", ms.Name())
	}
	o.name2state[ms.Name()] = ms
	o.States = append(o.States, ms)
	o.Ny = o.Accessor().Size()
	return
}

// GetState returns a state by name; nil if not found
func (o *System) GetState(name string) mst.Base {
	return o.name2state[name]
}

// GetForceField returns a force field by name; nil if not found
func (o *System) GetForceField(name string) ff.BaseForceField {
	return o.name2ff[name]
}

// AddForceField allocates a force field of given type acting upon the state named stateName
func (o *System) AddForceField(typeName, name, stateName string, data *inp.ForceFieldData) (f ff.BaseForceField, err error) {
	if _, ok := o.name2ff[name]; ok {
		return nil, chk.Err("force field %q exists already", name)
	}
	ms, ok := o.name2state[stateName]
	if !ok {
		return nil, chk.Err("force field %q: cannot find state %q", name, stateName)
	}
	f, err = ff.New(typeName, name, ms, data)
	if err != nil {
		return nil, chk.Err("force field %q cannot be created:\n%v", name, err)
	}
	o.name2ff[name] = f
	o.ForceFields = append(o.ForceFields, f)
	o.add_forcefield_to_subsets(f)
	if o.Verbose {
		io.Pf("force field %q of type %q acts upon %q (%s)\n", name, typeName, stateName, ms.Kind())
	}
	return
}

// ComputeForce zeroes the vectors fId and accumulates the forces of all force fields.
// Force masks are cleared before accumulation. The mask of a state is activated only if all
// force fields acting upon it fill masks; otherwise every DOF of the state is in use
func (o *System) ComputeForce(p *ff.Params, fId mst.DerivId) (err error) {
	masked := make(map[mst.Base]bool)
	for _, f := range o.FfMasked {
		masked[f.State()] = true
	}
	for _, f := range o.ForceFields {
		if !f.Capabilities().Mask {
			masked[f.State()] = false
		}
	}
	for _, ms := range o.States {
		ms.ResetDerivs(fId)
		mask := ms.ForceMask()
		mask.Assign(ms.Size(), false)
		mask.Activate(masked[ms])
	}
	for _, f := range o.ForceFields {
		if err = f.AddForce(p, fId); err != nil {
			return
		}
	}
	return
}

// ComputeDForce zeroes the vectors dfId and accumulates kFactor K dx + bFactor B dx of all force fields
func (o *System) ComputeDForce(p *ff.Params, dfId mst.DerivId) (err error) {
	for _, ms := range o.States {
		ms.ResetDerivs(dfId)
	}
	for _, f := range o.ForceFields {
		if err = f.AddDForce(p, dfId); err != nil {
			return
		}
	}
	return
}

// ComputeClambda zeroes the vectors resId and accumulates cFactor C λ of all compliant force fields
func (o *System) ComputeClambda(p *ff.Params, resId, lambdaId mst.DerivId, cFactor float64) (err error) {
	for _, ms := range o.States {
		ms.ResetDerivs(resId)
	}
	for _, f := range o.FfCompliance {
		if err = f.AddClambda(p, resId, lambdaId, cFactor); err != nil {
			return
		}
	}
	return
}

// PotentialEnergy returns the sum of energies of all force fields with energy
func (o *System) PotentialEnergy(p *ff.Params) (e float64) {
	for _, f := range o.FfEnergy {
		e += f.PotentialEnergy(p)
	}
	return
}

// Accessor returns an accessor placing all states one after another in a global matrix
func (o *System) Accessor() *asm.Accessor {
	return asm.NewAccessor(o.States...)
}

// AssembleK returns the global matrix kFactor K of all force fields
func (o *System) AssembleK(p *ff.Params) (K *asm.TripletMatrix, err error) {
	return o.assemble(func(f ff.BaseForceField, acc *asm.Accessor) error { return f.AddKToMatrix(p, acc) })
}

// AssembleB returns the global matrix bFactor B of all force fields
func (o *System) AssembleB(p *ff.Params) (B *asm.TripletMatrix, err error) {
	return o.assemble(func(f ff.BaseForceField, acc *asm.Accessor) error { return f.AddBToMatrix(p, acc) })
}

// AssembleSubK returns the entries of kFactor K touching the DOFs sub of the state stateName
func (o *System) AssembleSubK(p *ff.Params, stateName string, sub []int) (K *asm.TripletMatrix, err error) {
	ms, ok := o.name2state[stateName]
	if !ok {
		return nil, chk.Err("cannot find state %q", stateName)
	}
	return o.assemble(func(f ff.BaseForceField, acc *asm.Accessor) error {
		if f.State() != ms {
			return nil
		}
		return f.AddSubKToMatrix(p, acc, sub)
	})
}

// assemble allocates a global triplet and calls fcn for each force field assembling matrices.
// Sizes are computed here since states may have been resized
func (o *System) assemble(fcn func(f ff.BaseForceField, acc *asm.Accessor) error) (tm *asm.TripletMatrix, err error) {
	o.NnzK = 0
	for _, f := range o.FfMatrix {
		o.NnzK += f.MatrixNnz()
	}
	acc := o.Accessor()
	o.Ny = acc.Size()
	tm = asm.NewTripletMatrix(o.Ny, o.NnzK)
	acc.Matrix = tm
	for _, f := range o.FfMatrix {
		if err = fcn(f, acc); err != nil {
			return nil, chk.Err("assembly of %q failed:\n%v", f.Name(), err)
		}
	}
	return
}

// add_forcefield_to_subsets adds a force field to many subsets as it fits
func (o *System) add_forcefield_to_subsets(f ff.BaseForceField) {
	caps := f.Capabilities()
	if caps.Energy {
		o.FfEnergy = append(o.FfEnergy, f)
	}
	if caps.Matrix {
		o.FfMatrix = append(o.FfMatrix, f)
	}
	if caps.Compliance {
		o.FfCompliance = append(o.FfCompliance, f)
	}
	if caps.Mask {
		o.FfMasked = append(o.FfMasked, f)
	}
}
