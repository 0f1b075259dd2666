// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from (.scene) JSON or YAML files
package inp

import (
	"encoding/json"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// Data holds global data for scenes
type Data struct {
	Desc    string `json:"desc" yaml:"desc"`       // description of scene
	Verbose bool   `json:"verbose" yaml:"verbose"` // show messages
}

// ParamsData holds the mechanical parameters used by the command line tool
type ParamsData struct {
	KFactor float64 `json:"kfactor" yaml:"kfactor"` // stiffness factor
	BFactor float64 `json:"bfactor" yaml:"bfactor"` // damping factor
}

// StateData holds the data of a mechanical state
type StateData struct {
	Name     string      `json:"name" yaml:"name"`         // name of state
	Type     string      `json:"type" yaml:"type"`         // datatype; e.g. "Vec3d", "Rigid3d"
	Position [][]float64 `json:"position" yaml:"position"` // [ndof][ncoord] current positions
	Rest     [][]float64 `json:"rest" yaml:"rest"`         // [ndof][ncoord] rest positions; empty => same as position
	Velocity [][]float64 `json:"velocity" yaml:"velocity"` // [ndof][nderiv] velocities; empty => zero
}

// MaterialData holds material data for force models
type MaterialData struct {
	Name  string             `json:"name" yaml:"name"`   // name of material
	Model string             `json:"model" yaml:"model"` // name of model; e.g. "rod-elast"
	Prms  map[string]float64 `json:"prms" yaml:"prms"`   // parameters; e.g. "E", "A"
}

// ForceFieldData holds the data of a force field
type ForceFieldData struct {

	// input data
	Name     string             `json:"name" yaml:"name"`         // name of force field
	Type     string             `json:"type" yaml:"type"`         // type; e.g. "spring", "shapematching", "constant"
	State    string             `json:"state" yaml:"state"`       // name of mechanical state
	Mat      string             `json:"mat" yaml:"mat"`           // name of material (optional)
	Prms     map[string]float64 `json:"prms" yaml:"prms"`         // scalar parameters; e.g. "ks", "iterations"
	Indices  []int              `json:"indices" yaml:"indices"`   // subset of DOFs
	Pairs    [][]int            `json:"pairs" yaml:"pairs"`       // pairs of DOFs; e.g. springs
	Clusters [][]int            `json:"clusters" yaml:"clusters"` // groups of DOFs; e.g. shape matching clusters
	Vectors  [][]float64        `json:"vectors" yaml:"vectors"`   // per-index vectors; e.g. forces
	Fixed0   [][]float64        `json:"fixed0" yaml:"fixed0"`     // rest positions of non-mechanical particles
	Fixed    [][]float64        `json:"fixed" yaml:"fixed"`       // current positions of non-mechanical particles

	// derived
	Material *MaterialData `json:"-" yaml:"-"` // material corresponding to Mat
}

// Scene holds all scene data
type Scene struct {
	Data        Data              `json:"data" yaml:"data"`               // global data
	Params      ParamsData        `json:"params" yaml:"params"`           // mechanical parameters
	Materials   []*MaterialData   `json:"materials" yaml:"materials"`     // materials
	States      []*StateData      `json:"states" yaml:"states"`           // mechanical states
	ForceFields []*ForceFieldData `json:"forcefields" yaml:"forcefields"` // force fields

	// derived
	Key string `json:"-" yaml:"-"` // filename key; e.g. "springs" from "springs.scene"
}

// ReadScene reads scene data from a JSON or YAML (.yaml/.yml) file
func ReadScene(path string) (o *Scene, err error) {
	b, err := ReadBytes(path)
	if err != nil {
		return nil, chk.Err("cannot read scene file %q:\n%v", path, err)
	}
	ext := strings.ToLower(io.FnExt(path))
	o, err = ParseScene(b, ext == ".yaml" || ext == ".yml")
	if err != nil {
		return nil, chk.Err("cannot parse scene file %q:\n%v", path, err)
	}
	o.Key = io.FnKey(path)
	return
}

// ReadBytes reads the contents of a file; failures are returned as errors
func ReadBytes(path string) (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("%v", r)
		}
	}()
	b = io.ReadFile(path)
	return
}

// ParseScene decodes scene data
func ParseScene(b []byte, isYaml bool) (o *Scene, err error) {
	o = new(Scene)
	o.Params.SetDefault()
	if isYaml {
		err = yaml.Unmarshal(b, o)
	} else {
		err = json.Unmarshal(b, o)
	}
	if err != nil {
		return nil, err
	}
	err = o.PostProcess()
	return
}

// SetDefault sets default values
func (o *ParamsData) SetDefault() {
	o.KFactor = 1
}

// PostProcess checks names and connects force fields to materials
func (o *Scene) PostProcess() (err error) {
	names := make(map[string]bool)
	for i, s := range o.States {
		if s.Name == "" {
			return chk.Err("state # %d has no name", i)
		}
		if names[s.Name] {
			return chk.Err("state name %q is repeated", s.Name)
		}
		names[s.Name] = true
		if len(s.Rest) > 0 && len(s.Rest) != len(s.Position) {
			return chk.Err("state %q: number of rest positions (%d) differs from number of positions (%d)", s.Name, len(s.Rest), len(s.Position))
		}
		if len(s.Velocity) > 0 && len(s.Velocity) != len(s.Position) {
			return chk.Err("state %q: number of velocities (%d) differs from number of positions (%d)", s.Name, len(s.Velocity), len(s.Position))
		}
	}
	for i, f := range o.ForceFields {
		if f.Name == "" {
			f.Name = io.Sf("%s%d", f.Type, i)
		}
		if !names[f.State] {
			return chk.Err("force field %q refers to unknown state %q", f.Name, f.State)
		}
		if f.Mat != "" {
			f.Material = o.GetMaterial(f.Mat)
			if f.Material == nil {
				return chk.Err("force field %q refers to unknown material %q", f.Name, f.Mat)
			}
		}
	}
	return
}

// GetMaterial returns a material by name; nil if not found
func (o *Scene) GetMaterial(name string) *MaterialData {
	for _, m := range o.Materials {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// GetState returns a state by name; nil if not found
func (o *Scene) GetState(name string) *StateData {
	for _, s := range o.States {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Prm returns a scalar parameter or def if not given
func (o *ForceFieldData) Prm(key string, def float64) float64 {
	if v, ok := o.Prms[key]; ok {
		return v
	}
	return def
}
