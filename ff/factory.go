// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ff

import (
	"strings"

	"github.com/cpmech/gomech/dof"
	"github.com/cpmech/gomech/inp"
	"github.com/cpmech/gomech/mst"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Info holds information about a kind of force field
type Info struct {
	Kinds []dof.Kind // families of DOFs the force field can act upon
}

// Accepts tells whether the force field can act upon DOFs of the given kind
func (o *Info) Accepts(kind dof.Kind) bool {
	for _, k := range o.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// AllocatorType defines a function that allocates a force field. The state has already been
// checked against Info.Kinds; thus allocators may type-assert it
type AllocatorType func(name string, ms mst.Base, data *inp.ForceFieldData) (BaseForceField, error)

// Register sets information and allocator of a new kind of force field
func Register(typeName string, info Info, allocator AllocatorType) {
	if _, ok := allocators[typeName]; ok {
		chk.Panic("cannot register force field %q because type name exists already", typeName)
	}
	infos[typeName] = &info
	allocators[typeName] = allocator
}

// GetInfo returns information about a kind of force field
func GetInfo(typeName string) (info *Info, err error) {
	info, ok := infos[typeName]
	if !ok {
		return nil, chk.Err("cannot find force field %q. available: %s", typeName, strings.Join(Available(), ", "))
	}
	return
}

// Available returns the sorted names of registered force fields
func Available() (names []string) {
	m := make(map[string]bool)
	for name := range allocators {
		m[name] = true
	}
	return utl.StrBoolMapSort(m)
}

// CanCreate checks whether a force field of given type can act upon ms.
// An error is returned (and printed) if the DOF families do not match
func CanCreate(typeName string, ms mst.Base) (err error) {
	info, err := GetInfo(typeName)
	if err != nil {
		return
	}
	if ms == nil || !info.Accepts(ms.Kind()) {
		names := make([]string, len(info.Kinds))
		for i, k := range info.Kinds {
			names[i] = k.String()
		}
		found := "none"
		if ms != nil {
			found = io.Sf("%q with datatype %q", ms.Name(), ms.Kind().String())
		}
		err = chk.Err("no mechanical state with a datatype in [%s] found for force field %q. found: %s", strings.Join(names, ", "), typeName, found)
		io.Pfred("%v\n", err)
	}
	return
}

// New allocates a new force field after checking its compatibility with ms
func New(typeName, name string, ms mst.Base, data *inp.ForceFieldData) (f BaseForceField, err error) {
	err = CanCreate(typeName, ms)
	if err != nil {
		return
	}
	if data == nil {
		data = new(inp.ForceFieldData)
	}
	f, err = allocators[typeName](name, ms, data)
	if err != nil {
		return nil, chk.Err("cannot allocate force field %q of type %q:\n%v", name, typeName, err)
	}
	return
}

// infos holds information about all force fields
var infos = make(map[string]*Info)

// allocators holds all force field allocators
var allocators = make(map[string]AllocatorType)
