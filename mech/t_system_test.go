// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mech

import (
	"testing"

	"github.com/cpmech/gomech/dof"
	"github.com/cpmech/gomech/ff"
	"github.com/cpmech/gomech/inp"
	"github.com/cpmech/gomech/mst"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	_ "github.com/cpmech/gomech/ff/constant"
	_ "github.com/cpmech/gomech/ff/shapematch"
	_ "github.com/cpmech/gomech/ff/spring"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// readSystem reads a scene and builds its system
func readSystem(tst *testing.T, fn string) (scene *inp.Scene, sys *System) {
	scene, err := inp.ReadScene("../inp/data/" + fn)
	if err != nil {
		tst.Errorf("ReadScene failed:\n%v", err)
		return nil, nil
	}
	sys, err = Build(scene)
	if err != nil {
		tst.Errorf("Build failed:\n%v", err)
		return nil, nil
	}
	return
}

func Test_system01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system01")

	scene, sys := readSystem(tst, "springs.scene")
	if sys == nil {
		return
	}
	chk.Int(tst, "number of states", len(sys.States), 1)
	chk.Int(tst, "number of force fields", len(sys.ForceFields), 2)
	chk.Int(tst, "number of energies", len(sys.FfEnergy), 2)
	chk.Int(tst, "number of assemblers", len(sys.FfMatrix), 1)
	chk.Int(tst, "number of masked", len(sys.FfMasked), 2)
	chk.Int(tst, "Ny", sys.Ny, 6)
	if sys.GetForceField("rod") == nil || sys.GetForceField("load") == nil {
		tst.Errorf("force fields should be found by name\n")
		return
	}

	// forces: spring with Ks = E A / L0 = 100 stretched by 0.5 plus the load on particle 1
	p := Params(scene)
	ms := sys.GetState("particles")
	ms.ResetDerivs(mst.Force)
	ms.(*mst.MechanicalState[dof.Vec3, dof.Vec3]).WriteDerivs(mst.Force)[0] = dof.Vec3{1, 2, 3}
	err := sys.ComputeForce(p, mst.Force)
	if err != nil {
		tst.Errorf("ComputeForce failed:\n%v", err)
		return
	}
	f, _ := ms.DerivValues(mst.Force)
	chk.Deep2(tst, "f", 1e-12, f, [][]float64{{50, 0, 0}, {-40, 0, 0}})
	chk.Ints(tst, "mask", ms.ForceMask().Indices(), []int{0, 1})
	if !ms.ForceMask().IsActivated() {
		tst.Errorf("mask should be activated\n")
		return
	}

	// energy
	chk.Float64(tst, "energy", 1e-12, sys.PotentialEnergy(p), 12.5-15)

	// stiffness
	K, err := sys.AssembleK(p)
	if err != nil {
		tst.Errorf("AssembleK failed:\n%v", err)
		return
	}
	chk.Int(tst, "NnzK", sys.NnzK, 36)
	Kd := K.ToDense()
	chk.Float64(tst, "K00", 1e-12, Kd.At(0, 0), -100)
	chk.Float64(tst, "K11", 1e-12, Kd.At(1, 1), -100.0/3.0)
	chk.Float64(tst, "K03", 1e-12, Kd.At(0, 3), 100)
	chk.Float64(tst, "K33", 1e-12, Kd.At(3, 3), -100)

	// damping
	B, err := sys.AssembleB(p)
	if err != nil {
		tst.Errorf("AssembleB failed:\n%v", err)
		return
	}
	Bd := B.ToDense()
	chk.Float64(tst, "B00", 1e-17, Bd.At(0, 0), 0)

	// sub-assembly: entries touching particle 0 only
	Ks, err := sys.AssembleSubK(p, "particles", []int{0})
	if err != nil {
		tst.Errorf("AssembleSubK failed:\n%v", err)
		return
	}
	Ksd := Ks.ToDense()
	chk.Float64(tst, "Ks00", 1e-12, Ksd.At(0, 0), -100)
	chk.Float64(tst, "Ks30", 1e-12, Ksd.At(3, 0), 100)
	chk.Float64(tst, "Ks33", 1e-17, Ksd.At(3, 3), 0)
	if _, err = sys.AssembleSubK(p, "nothing", []int{0}); err == nil {
		tst.Errorf("AssembleSubK should have failed with unknown state\n")
		return
	}

	// derivative of forces
	s := ms.(*mst.MechanicalState[dof.Vec3, dof.Vec3])
	s.SetDerivs(mst.Dx, []dof.Vec3{{1, 0, 0}, {0, 0, 0}})
	err = sys.ComputeDForce(p, mst.Df)
	if err != nil {
		tst.Errorf("ComputeDForce failed:\n%v", err)
		return
	}
	df, _ := ms.DerivValues(mst.Df)
	chk.Deep2(tst, "df", 1e-12, df, [][]float64{{-100, 0, 0}, {100, 0, 0}})
}

func Test_system02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system02")

	scene, sys := readSystem(tst, "cluster.yaml")
	if sys == nil {
		return
	}
	p := Params(scene)

	// translated pair: no force
	err := sys.ComputeForce(p, mst.Force)
	if err != nil {
		tst.Errorf("ComputeForce failed:\n%v", err)
		return
	}
	f, _ := sys.GetState("pair").DerivValues(mst.Force)
	chk.Deep2(tst, "f", 1e-12, f, [][]float64{{0, 0, 0}, {0, 0, 0}})
	chk.Float64(tst, "energy", 1e-12, sys.PotentialEnergy(p), 0)

	// K = -k I
	K, err := sys.AssembleK(p)
	if err != nil {
		tst.Errorf("AssembleK failed:\n%v", err)
		return
	}
	Kd := K.ToDense()
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			correct := 0.0
			if i == j {
				correct = -100
			}
			chk.Float64(tst, io.Sf("K%d%d", i, j), 1e-12, Kd.At(i, j), correct)
		}
	}

	// compliance
	chk.Int(tst, "number of compliant", len(sys.FfCompliance), 1)
	ms := sys.GetState("pair").(*mst.MechanicalState[dof.Vec3, dof.Vec3])
	lam := ms.AllocDeriv()
	res := ms.AllocDeriv()
	ms.SetDerivs(lam, []dof.Vec3{{1, 2, 3}, {1, 1, 1}})
	err = sys.ComputeClambda(p, res, lam, 1)
	if err != nil {
		tst.Errorf("ComputeClambda failed:\n%v", err)
		return
	}
	vals, _ := ms.DerivValues(res)
	chk.Deep2(tst, "res", 1e-15, vals, [][]float64{{0.01, 0.02, 0.03}, {0.01, 0.01, 0.01}})
}

func Test_system03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system03")

	// states from input data
	ms, err := NewState(&inp.StateData{
		Name:     "bodies",
		Type:     "Rigid3d",
		Position: [][]float64{{1, 2, 3, 0, 0, 0, 1}},
		Velocity: [][]float64{{1, 0, 0, 0, 0, 1}},
	})
	if err != nil {
		tst.Errorf("NewState failed:\n%v", err)
		return
	}
	chk.Int(tst, "block size", ms.BlockSize(), 6)
	rest, _ := ms.CoordValues(mst.RestPosition)
	chk.Deep2(tst, "rest", 1e-17, rest, [][]float64{{1, 2, 3, 0, 0, 0, 1}})
	v, _ := ms.DerivValues(mst.Velocity)
	chk.Deep2(tst, "v", 1e-17, v, [][]float64{{1, 0, 0, 0, 0, 1}})

	// errors
	if _, err = NewState(&inp.StateData{Name: "a", Type: "Vec4d"}); err == nil {
		tst.Errorf("NewState should have failed with unknown datatype\n")
		return
	}
	if _, err = NewState(&inp.StateData{Name: "a", Type: "Vec2d", Position: [][]float64{{1, 2, 3}}}); err == nil {
		tst.Errorf("NewState should have failed with wrong number of coordinates\n")
		return
	}
	if _, err = NewState(&inp.StateData{Name: "a", Type: "Vec1d", Position: [][]float64{{1}}, Velocity: [][]float64{{1, 2}}}); err == nil {
		tst.Errorf("NewState should have failed with wrong number of velocity components\n")
		return
	}

	// registered force fields in alphabetical order
	chk.Strings(tst, "available", ff.Available(), []string{"constant", "shapematching", "spring"})

	// system errors
	sys := NewSystem(false)
	if err = sys.AddState(ms); err != nil {
		tst.Errorf("AddState failed:\n%v", err)
		return
	}
	if err = sys.AddState(ms); err == nil {
		tst.Errorf("AddState should have failed with repeated name\n")
		return
	}
	if _, err = sys.AddForceField("spring", "rod", "bodies", &inp.ForceFieldData{Pairs: [][]int{{0, 0}}}); err == nil {
		tst.Errorf("AddForceField should have failed with rigid bodies\n")
		return
	}
	if _, err = sys.AddForceField("constant", "push", "nothing", nil); err == nil {
		tst.Errorf("AddForceField should have failed with unknown state\n")
		return
	}
	if _, err = sys.AddForceField("constant", "push", "bodies", &inp.ForceFieldData{Vectors: [][]float64{{1, 0, 0, 0, 0, 0}}}); err != nil {
		tst.Errorf("AddForceField failed:\n%v", err)
		return
	}
	if _, err = sys.AddForceField("constant", "push", "bodies", &inp.ForceFieldData{Vectors: [][]float64{{1, 0, 0, 0, 0, 0}}}); err == nil {
		tst.Errorf("AddForceField should have failed with repeated name\n")
		return
	}

	// force fields without matrices are skipped by assembly
	K, err := sys.AssembleK(ff.DefaultParams())
	if err != nil {
		tst.Errorf("AssembleK failed:\n%v", err)
		return
	}
	chk.Int(tst, "NnzK", sys.NnzK, 0)
	chk.Float64(tst, "K00", 1e-17, K.ToDense().At(0, 0), 0)
}

func Test_system04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system04")

	scene, sys := readSystem(tst, "springs.scene")
	if sys == nil {
		return
	}
	p := Params(scene)

	// spring: 12.5 s²; load: -10 (1 + 0.5 s)
	s := utl.LinSpace(0, 1, 3)
	e, err := sys.EnergyPath(p, s)
	if err != nil {
		tst.Errorf("EnergyPath failed:\n%v", err)
		return
	}
	chk.Array(tst, "e", 1e-12, e, []float64{-10, 3.125 - 12.5, -2.5})

	// positions are restored
	x, _ := sys.GetState("particles").CoordValues(mst.Position)
	chk.Deep2(tst, "x", 1e-17, x, [][]float64{{0, 0, 0}, {1.5, 0, 0}})
}

// drag implements a force model without force mask: f -= c v
type drag struct {
	c float64
}

func (o *drag) AddForceTo(p *ff.Params, f []dof.Vec3, x []dof.Vec3, v []dof.Vec3) {
	for i := range f {
		for a := 0; a < 3; a++ {
			f[i][a] -= o.c * v[i][a]
		}
	}
}

func (o *drag) AddDForceTo(p *ff.Params, df []dof.Vec3, dx []dof.Vec3) {}

func Test_system05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system05")

	scene, sys := readSystem(tst, "springs.scene")
	if sys == nil {
		return
	}
	p := Params(scene)
	ms := sys.GetState("particles").(*mst.MechanicalState[dof.Vec3, dof.Vec3])

	// all force fields fill masks
	err := sys.ComputeForce(p, mst.Force)
	if err != nil {
		tst.Errorf("ComputeForce failed:\n%v", err)
		return
	}
	if !ms.ForceMask().IsActivated() {
		tst.Errorf("mask should be activated\n")
		return
	}

	// a force field without mask deactivates the mask of its state
	ff.Register("drag-test", ff.Info{Kinds: []dof.Kind{dof.KindVec3}}, func(name string, s mst.Base, data *inp.ForceFieldData) (ff.BaseForceField, error) {
		state := s.(*mst.MechanicalState[dof.Vec3, dof.Vec3])
		return ff.NewForceField[dof.Vec3, dof.Vec3](name, state, &drag{c: data.Prm("c", 1)}), nil
	})
	if _, err = sys.AddForceField("drag-test", "drag", "particles", &inp.ForceFieldData{Prms: map[string]float64{"c": 2}}); err != nil {
		tst.Errorf("AddForceField failed:\n%v", err)
		return
	}
	chk.Int(tst, "number of force fields", len(sys.ForceFields), 3)
	chk.Int(tst, "number of masked", len(sys.FfMasked), 2)
	ms.SetDerivs(mst.Velocity, []dof.Vec3{{1, 0, 0}, {0, 0, 0}})
	err = sys.ComputeForce(p, mst.Force)
	if err != nil {
		tst.Errorf("ComputeForce failed:\n%v", err)
		return
	}
	if ms.ForceMask().IsActivated() {
		tst.Errorf("mask should not be activated\n")
		return
	}
	chk.Ints(tst, "mask", ms.ForceMask().Indices(), []int{0, 1})
	f, _ := ms.DerivValues(mst.Force)
	chk.Deep2(tst, "f", 1e-12, f, [][]float64{{50 - 2, 0, 0}, {-40, 0, 0}})

	// resized state: sizes are refreshed by assembly
	chk.Int(tst, "Ny", sys.Ny, 6)
	ms.Resize(3)
	K, err := sys.AssembleK(p)
	if err != nil {
		tst.Errorf("AssembleK failed:\n%v", err)
		return
	}
	chk.Int(tst, "Ny", sys.Ny, 9)
	chk.Int(tst, "K.N", K.N, 9)
	Kd := K.ToDense()
	r, c := Kd.Dims()
	chk.Ints(tst, "dims", []int{r, c}, []int{9, 9})
	chk.Float64(tst, "K00", 1e-12, Kd.At(0, 0), -100)
	chk.Float64(tst, "K88", 1e-17, Kd.At(8, 8), 0)
}
