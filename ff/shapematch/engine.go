// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shapematch implements shape matching: per cluster of particles, the best-fit rigid
// or affine transform from the rest shape to the current shape gives target positions
package shapematch

import (
	"github.com/cpmech/gomech/dof"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/spatial/r3"
)

// Status of engine
type Status int

const (
	Uninitialized Status = iota // rest data not computed yet
	Ready                       // rest data computed; no target computed yet
	Steady                      // targets computed at least once
)

// Engine computes shape-matched target positions.
//
//   Xcm0 = Σ w X0 / Σ w                 Qx = Σ w (X0 - Xcm0)(X0 - Xcm0)ᵀ
//   Xcm  = Σ w X  / Σ w                 T  = Σ w (X - Xcm)(X0 - Xcm0)ᵀ · Qx⁺
//   T   ← (1 - affineRatio) R + affineRatio T   with R the rotation of T
//   target_i = average over clusters of Xcm + T (X0_i - Xcm0)
//
// Cluster indices greater than or equal to the number of particles refer to fixed particles
// with weight FixedWeight; mechanical particles have weight 1. For rigid DOFs, only the centers
// are matched and orientations are carried over
type Engine[C, D any] struct {

	// configuration
	Iterations    int             // number of iterations
	FixedPosition []dof.Vec3      // current positions of fixed particles; FixedPosition0 is used if empty
	Verbose       bool            // show messages
	types         dof.Types[C, D] // DOF descriptor
	affineRatio   float64         // 0 = rigid; 1 = affine
	fixedWeight   float64         // weight of fixed particles
	fixed0        []dof.Vec3      // rest positions of fixed particles
	clusters      [][]int         // given clusters; nil means one cluster with all particles
	version       int             // incremented when rest data must be recomputed

	// rest data
	status  Status    // status of engine
	restKey [2]int    // (version, generation) of rest data
	nbp     int       // number of particles of rest data
	active  [][]int   // clusters in use
	W       []float64 // [ncluster] total weight
	Xcm0    []r3.Vec  // [ncluster] rest centers of mass
	Qxinv   []Mat3    // [ncluster] pseudo-inverse of rest second moments
	rank    []int     // [ncluster] rank of rest second moments
	X0      []r3.Vec  // [nbp] rest positions
	NbClust []int     // [nbp] number of clusters containing each particle

	// current data
	T      []Mat3   // [ncluster] transforms
	Xcm    []r3.Vec // [ncluster] current centers of mass
	target []C      // [nbp] target positions
	sum    []r3.Vec // [nbp] accumulated targets
	pos    []r3.Vec // [nbp] positions being matched
}

// NewEngine returns a new engine with one iteration, rigid matching and unit weight for fixed particles
func NewEngine[C, D any](types dof.Types[C, D]) (o *Engine[C, D]) {
	if types.SpatialDim() > 3 {
		chk.Panic("shape matching requires DOFs with spatial dimension up to 3; %q given", types.Name())
	}
	return &Engine[C, D]{Iterations: 1, types: types, fixedWeight: 1}
}

// AffineRatio returns the blending between rigid (0) and affine (1) transforms
func (o *Engine[C, D]) AffineRatio() float64 { return o.affineRatio }

// SetAffineRatio sets the blending between rigid (0) and affine (1) transforms. Values are clamped to [0,1]
func (o *Engine[C, D]) SetAffineRatio(ratio float64) {
	switch {
	case ratio < 0:
		ratio = 0
	case ratio > 1:
		ratio = 1
	}
	o.affineRatio = ratio
}

// FixedWeight returns the weight of fixed particles
func (o *Engine[C, D]) FixedWeight() float64 { return o.fixedWeight }

// SetFixedWeight sets the weight of fixed particles; rest data will be recomputed
func (o *Engine[C, D]) SetFixedWeight(weight float64) (err error) {
	if weight < 0 {
		return chk.Err("weight of fixed particles must be non-negative; %g is invalid", weight)
	}
	if weight != o.fixedWeight {
		o.fixedWeight = weight
		o.version++
	}
	return
}

// SetFixedPosition0 sets the rest positions of fixed particles; rest data will be recomputed
func (o *Engine[C, D]) SetFixedPosition0(points []dof.Vec3) {
	o.fixed0 = append([]dof.Vec3{}, points...)
	o.version++
}

// SetClusters sets the clusters; nil means one cluster with all particles. Rest data will be recomputed
func (o *Engine[C, D]) SetClusters(clusters [][]int) {
	o.clusters = make([][]int, len(clusters))
	for i, c := range clusters {
		o.clusters[i] = append([]int{}, c...)
	}
	if clusters == nil {
		o.clusters = nil
	}
	o.version++
}

// Status returns the status of engine
func (o *Engine[C, D]) Status() Status { return o.status }

// TargetPosition returns the target positions computed by the last Update
func (o *Engine[C, D]) TargetPosition() []C { return o.target }

// Clustered tells whether particle i belongs to at least one cluster
func (o *Engine[C, D]) Clustered(i int) bool {
	return i >= 0 && i < len(o.NbClust) && o.NbClust[i] > 0
}

// Init computes the rest data. generation is the topology version of rest positions
func (o *Engine[C, D]) Init(rest []C, generation int) (err error) {

	// clusters
	nbp, nfix := len(rest), len(o.fixed0)
	o.active = o.clusters
	if o.active == nil {
		o.active = [][]int{make([]int, nbp)}
		for i := 0; i < nbp; i++ {
			o.active[0][i] = i
		}
	}
	for k, c := range o.active {
		for _, j := range c {
			if j < 0 || j >= nbp+nfix {
				return chk.Err("cluster # %d has invalid particle %d; number of particles = %d (mechanical) + %d (fixed)", k, j, nbp, nfix)
			}
		}
	}

	// particles
	o.nbp = nbp
	o.X0 = make([]r3.Vec, nbp)
	o.NbClust = make([]int, nbp)
	for i := 0; i < nbp; i++ {
		o.X0[i] = vec(dof.Center(o.types, &rest[i]))
	}

	// clusters
	nc := len(o.active)
	o.W = make([]float64, nc)
	o.Xcm0 = make([]r3.Vec, nc)
	o.Qxinv = make([]Mat3, nc)
	o.rank = make([]int, nc)
	o.T = make([]Mat3, nc)
	o.Xcm = make([]r3.Vec, nc)
	for k, c := range o.active {
		for _, j := range c {
			if j < nbp {
				o.NbClust[j]++
			}
		}
		o.W[k], o.Xcm0[k] = o.centerOfMass(c, o.X0, o.fixedRest)
		var qx Mat3
		for _, j := range c {
			x0, w := o.point(j, o.X0, o.fixedRest)
			d := r3.Sub(x0, o.Xcm0[k])
			qx.AddOuter(w, d, d)
		}
		o.Qxinv[k], o.rank[k] = PseudoInverse(qx)
	}

	// results
	o.target = make([]C, nbp)
	o.sum = make([]r3.Vec, nbp)
	o.pos = make([]r3.Vec, nbp)
	o.restKey = [2]int{o.version, generation}
	o.status = Ready
	if o.Verbose {
		io.Pf("shape matching: %d particles, %d fixed particles, %d clusters\n", nbp, nfix, nc)
	}
	return
}

// Update computes the target positions corresponding to x. The rest data is recomputed first if
// the number of rest positions, the generation of rest positions or the parameters have changed
func (o *Engine[C, D]) Update(x, rest []C, generation int) (target []C, err error) {

	// rest data
	if o.status == Uninitialized || len(rest) != o.nbp || o.restKey != [2]int{o.version, generation} {
		if err = o.Init(rest, generation); err != nil {
			return
		}
	}
	if len(x) != o.nbp {
		return nil, chk.Err("number of positions (%d) must be equal to number of rest positions (%d)", len(x), o.nbp)
	}

	// positions
	for i := 0; i < o.nbp; i++ {
		o.pos[i] = vec(dof.Center(o.types, &x[i]))
	}

	// iterations
	niter := o.Iterations
	if niter < 1 {
		niter = 1
	}
	for it := 0; it < niter; it++ {
		for i := range o.sum {
			o.sum[i] = r3.Vec{}
		}
		for k, c := range o.active {
			o.transform(k, c)
			for _, j := range c {
				if j < o.nbp {
					o.sum[j] = r3.Add(o.sum[j], r3.Add(o.Xcm[k], o.T[k].Apply(r3.Sub(o.X0[j], o.Xcm0[k]))))
				}
			}
		}
		for i := 0; i < o.nbp; i++ {
			if o.NbClust[i] > 0 {
				o.pos[i] = r3.Scale(1/float64(o.NbClust[i]), o.sum[i])
			}
		}
	}

	// results
	for i := 0; i < o.nbp; i++ {
		o.target[i] = x[i]
		if o.NbClust[i] > 0 {
			dof.SetCenter(o.types, &o.target[i], unvec(o.pos[i]))
		}
	}
	o.status = Steady
	return o.target, nil
}

// transform computes the current center of mass and the transform of cluster k
func (o *Engine[C, D]) transform(k int, c []int) {
	o.T[k] = Identity()
	o.Xcm[k] = o.Xcm0[k]
	if len(c) == 0 {
		return
	}
	_, o.Xcm[k] = o.centerOfMass(c, o.pos, o.fixedCurrent)
	if o.W[k] <= 0 || o.rank[k] == 0 {
		return
	}
	var a Mat3
	for _, j := range c {
		x, w := o.point(j, o.pos, o.fixedCurrent)
		x0, _ := o.point(j, o.X0, o.fixedRest)
		a.AddOuter(w, r3.Sub(x, o.Xcm[k]), r3.Sub(x0, o.Xcm0[k]))
	}
	t := Mul(a, o.Qxinv[k])
	if o.affineRatio < 1 {
		t = Blend(Rotation(t), t, o.affineRatio)
	}
	o.T[k] = t
}

// centerOfMass returns the total weight and the center of mass of a cluster. The unweighted
// average is returned if the total weight is zero
func (o *Engine[C, D]) centerOfMass(c []int, mech []r3.Vec, fixed func(j int) r3.Vec) (W float64, xcm r3.Vec) {
	for _, j := range c {
		x, w := o.point(j, mech, fixed)
		xcm = r3.Add(xcm, r3.Scale(w, x))
		W += w
	}
	if W > 0 {
		return W, r3.Scale(1/W, xcm)
	}
	xcm = r3.Vec{}
	for _, j := range c {
		x, _ := o.point(j, mech, fixed)
		xcm = r3.Add(xcm, x)
	}
	return W, r3.Scale(1/float64(len(c)), xcm)
}

// point returns the position and weight of particle j of a cluster
func (o *Engine[C, D]) point(j int, mech []r3.Vec, fixed func(j int) r3.Vec) (x r3.Vec, w float64) {
	if j < o.nbp {
		return mech[j], 1
	}
	return fixed(j - o.nbp), o.fixedWeight
}

// fixedRest returns the rest position of fixed particle j
func (o *Engine[C, D]) fixedRest(j int) r3.Vec {
	return vec(o.fixed0[j])
}

// fixedCurrent returns the current position of fixed particle j
func (o *Engine[C, D]) fixedCurrent(j int) r3.Vec {
	if j < len(o.FixedPosition) {
		return vec(o.FixedPosition[j])
	}
	return vec(o.fixed0[j])
}

// vec converts a point into a vector
func vec(p dof.Vec3) r3.Vec { return r3.Vec{X: p[0], Y: p[1], Z: p[2]} }

// unvec converts a vector into a point
func unvec(v r3.Vec) dof.Vec3 { return dof.Vec3{v.X, v.Y, v.Z} }
