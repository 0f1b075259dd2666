// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rod

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_elast01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("elast01")

	mdl, err := New("rod-elast")
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	err = mdl.Init(map[string]float64{"E": 200, "A": 0.5, "eta": 0.1})
	if err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}
	chk.Float64(tst, "ks", 1e-15, mdl.Stiffness(2), 50)
	chk.Float64(tst, "kd", 1e-15, mdl.Damping(2), 0.025)

	// defaults are valid
	if err = new(LinElast).Init(mdl.GetPrms()); err != nil {
		tst.Errorf("Init with default parameters failed:\n%v", err)
		return
	}

	// errors
	if err = new(LinElast).Init(map[string]float64{"G": 1, "A": 1}); err == nil {
		tst.Errorf("Init should have failed with wrong parameter name\n")
	}
	if err = new(LinElast).Init(map[string]float64{"E": 1}); err == nil {
		tst.Errorf("Init should have failed with zero area\n")
	}
	if _, err = New("rod-plastic"); err == nil {
		tst.Errorf("New should have failed with unknown model\n")
	}
}
