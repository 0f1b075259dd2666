// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// TripletMatrix accumulates entries into a sparse triplet. Repeated entries are summed
// when the triplet is converted to a compressed or dense matrix
type TripletMatrix struct {
	N int         // number of rows and columns
	T *la.Triplet // entries
}

// NewTripletMatrix returns a new n×n sparse matrix with room for nnz entries
func NewTripletMatrix(n, nnz int) *TripletMatrix {
	if nnz < 1 {
		nnz = 1
	}
	return &TripletMatrix{N: n, T: la.NewTriplet(n, n, nnz)}
}

// Add appends an entry
func (o *TripletMatrix) Add(row, col int, value float64) {
	o.T.Put(row, col, value)
}

// Start clears all entries, keeping the allocated memory
func (o *TripletMatrix) Start() {
	o.T.Start()
}

// ToDense returns a dense copy with repeated entries summed
func (o *TripletMatrix) ToDense() *mat.Dense {
	if o.N < 1 {
		return &mat.Dense{}
	}
	a := o.T.ToDense()
	d := mat.NewDense(o.N, o.N, nil)
	for i := 0; i < o.N; i++ {
		for j := 0; j < o.N; j++ {
			d.Set(i, j, a.Get(i, j))
		}
	}
	return d
}

// DenseMatrix accumulates entries into a dense matrix
type DenseMatrix struct {
	D *mat.Dense
}

// NewDenseMatrix returns a new n×n dense matrix filled with zeros
func NewDenseMatrix(n int) *DenseMatrix {
	return &DenseMatrix{D: mat.NewDense(n, n, nil)}
}

// Add adds value to entry (row, col)
func (o *DenseMatrix) Add(row, col int, value float64) {
	o.D.Set(row, col, o.D.At(row, col)+value)
}
