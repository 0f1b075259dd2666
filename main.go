// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cpmech/gomech/asm"
	"github.com/cpmech/gomech/ff"
	"github.com/cpmech/gomech/inp"
	"github.com/cpmech/gomech/mech"
	"github.com/cpmech/gomech/mst"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	_ "github.com/cpmech/gomech/ff/constant"
	_ "github.com/cpmech/gomech/ff/shapematch"
	_ "github.com/cpmech/gomech/ff/spring"
)

var (
	verbose bool    // show messages
	npath   int     // number of points along the energy path
	matrix  string  // "K" or "B"
	kfactor float64 // overrides the stiffness factor of the scene if non-zero
	bfactor float64 // overrides the damping factor of the scene if non-zero
)

// titleSty styles headings
var titleSty = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.Pfred("\nERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	rootCmd := &cobra.Command{
		Use:   "gomech",
		Short: "forces, energies and matrices of mechanical scenes",
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show messages")
	rootCmd.PersistentFlags().Float64Var(&kfactor, "kfactor", 0, "stiffness factor (0 => from scene)")
	rootCmd.PersistentFlags().Float64Var(&bfactor, "bfactor", 0, "damping factor (0 => from scene)")

	forceCmd := &cobra.Command{
		Use:   "force [scene]",
		Short: "accumulate forces of all force fields",
		Args:  cobra.ExactArgs(1),
		RunE:  runForce,
	}

	energyCmd := &cobra.Command{
		Use:   "energy [scene]",
		Short: "compute the potential energy",
		Args:  cobra.ExactArgs(1),
		RunE:  runEnergy,
	}
	energyCmd.Flags().IntVar(&npath, "path", 0, "number of points along the path from rest positions (0 => none)")

	assembleCmd := &cobra.Command{
		Use:   "assemble [scene]",
		Short: "assemble the global stiffness or damping matrix",
		Args:  cobra.ExactArgs(1),
		RunE:  runAssemble,
	}
	assembleCmd.Flags().StringVar(&matrix, "matrix", "K", "matrix to assemble: K or B")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list available force fields",
		RunE:  runList,
	}

	rootCmd.AddCommand(forceCmd, energyCmd, assembleCmd, listCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// load reads a scene and builds its system
func load(fn string) (sys *mech.System, p *ff.Params, err error) {
	io.Verbose = verbose
	scene, err := inp.ReadScene(fn)
	if err != nil {
		return
	}
	if verbose {
		scene.Data.Verbose = true
		io.Pf("%s\n", titleSty.Render(io.Sf("scene %q: %s", scene.Key, scene.Data.Desc)))
	}
	sys, err = mech.Build(scene)
	if err != nil {
		return
	}
	p = mech.Params(scene)
	if kfactor != 0 {
		p.KFactor = kfactor
	}
	if bfactor != 0 {
		p.BFactor = bfactor
	}
	return
}

func runForce(cmd *cobra.Command, args []string) (err error) {
	sys, p, err := load(args[0])
	if err != nil {
		return
	}
	if err = sys.ComputeForce(p, mst.Force); err != nil {
		return
	}
	for _, ms := range sys.States {
		f, err := ms.DerivValues(mst.Force)
		if err != nil {
			return err
		}
		io.Pf("%s\n", titleSty.Render(io.Sf("%s (%s)", ms.Name(), ms.Kind())))
		mask := ms.ForceMask()
		for i, fi := range f {
			flag := " "
			if mask.Entry(i) {
				flag = "*"
			}
			io.Pf("%s %4d %s\n", flag, i, values(fi))
		}
	}
	return
}

func runEnergy(cmd *cobra.Command, args []string) (err error) {
	sys, p, err := load(args[0])
	if err != nil {
		return
	}
	for _, f := range sys.FfEnergy {
		io.Pf("%-20s %23.15e\n", f.Name(), f.PotentialEnergy(p))
	}
	io.Pf("%-20s %23.15e\n", "total", sys.PotentialEnergy(p))
	if npath < 2 {
		return
	}
	e, err := sys.EnergyPath(p, utl.LinSpace(0, 1, npath))
	if err != nil {
		return
	}
	io.Pf("\n%s\n", asciigraph.Plot(e,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption("energy from rest (s=0) to current (s=1) positions"),
	))
	return
}

func runAssemble(cmd *cobra.Command, args []string) (err error) {
	sys, p, err := load(args[0])
	if err != nil {
		return
	}
	if err = sys.ComputeForce(p, mst.Force); err != nil { // updates linearisations
		return
	}
	var tm *asm.TripletMatrix
	switch strings.ToUpper(matrix) {
	case "K":
		tm, err = sys.AssembleK(p)
	case "B":
		tm, err = sys.AssembleB(p)
	default:
		return chk.Err("matrix %q is not available; use K or B", matrix)
	}
	if err != nil {
		return
	}
	io.Pf("%s\n", titleSty.Render(io.Sf("%s: %d×%d; nnz ≤ %d", strings.ToUpper(matrix), tm.N, tm.N, sys.NnzK)))
	d := tm.ToDense()
	for i := 0; i < tm.N; i++ {
		row := make([]float64, tm.N)
		for j := range row {
			row[j] = d.At(i, j)
		}
		io.Pf("%s\n", values(row))
	}
	return
}

func runList(cmd *cobra.Command, args []string) (err error) {
	for _, name := range ff.Available() {
		info, err := ff.GetInfo(name)
		if err != nil {
			return err
		}
		kinds := make([]string, len(info.Kinds))
		for i, k := range info.Kinds {
			kinds[i] = k.String()
		}
		io.Pf("%-16s %s\n", name, strings.Join(kinds, ", "))
	}
	return
}

// values formats a row of numbers
func values(v []float64) string {
	var b strings.Builder
	for _, x := range v {
		b.WriteString(io.Sf("%13.6g", x))
	}
	return b.String()
}
