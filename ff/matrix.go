// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ff

import (
	"github.com/cpmech/gomech/mst"
	"github.com/cpmech/gosl/chk"
)

// Matrix defines global matrices: values are only ever added
type Matrix interface {
	Add(row, col int, value float64) // adds value to entry (row, col)
}

// MatrixRef holds a global matrix and the offset of the scalars of one state in it
type MatrixRef struct {
	Matrix Matrix // global matrix
	Offset int    // first row/col of the state
}

// MatrixAccessor maps states to their position in a global matrix
type MatrixAccessor interface {
	GetMatrix(ms mst.Base) (ref MatrixRef, err error)
}

// AddToMatrix accumulates a square element matrix into a global matrix
//  Input:
//   m         -- global matrix
//   offset    -- first row/col of the local DOFs in m
//   S         -- block size: number of scalars per node
//   nodeIndex -- [n] indices of the nodes of the element
//   em        -- [S*n][S*n] element matrix
//   scale     -- weight applied to em; e.g. kFactor
func AddToMatrix(m Matrix, offset, S int, nodeIndex []int, em [][]float64, scale float64) {
	n := len(nodeIndex)
	if len(em) != S*n {
		chk.Panic("element matrix has %d rows but %d nodes with block size %d require %d", len(em), n, S, S*n)
	}
	for n1 := 0; n1 < n; n1++ {
		for i := 0; i < S; i++ {
			ROW := offset + S*nodeIndex[n1] + i
			row := S*n1 + i
			if len(em[row]) != S*n {
				chk.Panic("row %d of element matrix has %d columns; %d required", row, len(em[row]), S*n)
			}
			for n2 := 0; n2 < n; n2++ {
				for j := 0; j < S; j++ {
					COL := offset + S*nodeIndex[n2] + j
					col := S*n2 + j
					m.Add(ROW, COL, em[row][col]*scale)
				}
			}
		}
	}
}

// subMatrix filters entries not touching a subset of nodes
type subMatrix struct {
	m      Matrix
	offset int
	S      int
	nodes  map[int]bool
}

// Add adds value if the node of row or the node of col belongs to the subset
func (o *subMatrix) Add(row, col int, value float64) {
	if o.nodes[(row-o.offset)/o.S] || o.nodes[(col-o.offset)/o.S] {
		o.m.Add(row, col, value)
	}
}

// newSubMatrix returns a filter for m
func newSubMatrix(m Matrix, offset, S int, sub []int) *subMatrix {
	o := &subMatrix{m: m, offset: offset, S: S, nodes: make(map[int]bool, len(sub))}
	for _, n := range sub {
		o.nodes[n] = true
	}
	return o
}
