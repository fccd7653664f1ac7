// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph provides the symbolic expressions that losses are built
// from: typed placeholders, elementwise and reduction operations, an
// evaluator and reverse-mode gradients.
//
// Example:
//
//	x, _ := graph.NewPlaceholder("x", 1, tensor.Float64)
//	y := graph.Mean(graph.Mul(x, x))
//	grads, err := graph.Gradients(y, graph.Feeds{x: data}, x)
package graph

import (
	"github.com/born-ml/lossgraph/internal/graph"
	"github.com/born-ml/lossgraph/internal/tensor"
)

// Node is a vertex of an expression graph.
type Node = graph.Node

// Operation computes a node's value and its input gradients.
type Operation = graph.Operation

// Feeds binds placeholders to values for one evaluation.
type Feeds = graph.Feeds

// Errors.
var (
	ErrInvalidRank     = graph.ErrInvalidRank
	ErrRankMismatch    = graph.ErrRankMismatch
	ErrDTypeMismatch   = graph.ErrDTypeMismatch
	ErrMissingFeed     = graph.ErrMissingFeed
	ErrFeedMismatch    = graph.ErrFeedMismatch
	ErrShapeMismatch   = graph.ErrShapeMismatch
	ErrIndexOutOfRange = graph.ErrIndexOutOfRange
	ErrNotScalar       = graph.ErrNotScalar
)

// NewPlaceholder creates a named input slot of rank 0..4.
func NewPlaceholder(name string, rank int, dtype tensor.DataType) (*Node, error) {
	return graph.NewPlaceholder(name, rank, dtype)
}

// Const embeds a fixed value.
func Const(v *tensor.Value) *Node { return graph.Const(v) }

// Scalar embeds a float64 constant.
func Scalar(x float64) *Node { return graph.Scalar(x) }

// Elementwise operations.

// Add returns a + b.
func Add(a, b *Node) *Node { return graph.Add(a, b) }

// Sub returns a - b.
func Sub(a, b *Node) *Node { return graph.Sub(a, b) }

// Mul returns a * b.
func Mul(a, b *Node) *Node { return graph.Mul(a, b) }

// Div returns a / b.
func Div(a, b *Node) *Node { return graph.Div(a, b) }

// Neg returns -x.
func Neg(x *Node) *Node { return graph.Neg(x) }

// Abs returns |x|.
func Abs(x *Node) *Node { return graph.Abs(x) }

// Log returns the natural logarithm of x.
func Log(x *Node) *Node { return graph.Log(x) }

// Maximum returns max(x, c).
func Maximum(x *Node, c float64) *Node { return graph.Maximum(x, c) }

// Clip limits x to [lo, hi].
func Clip(x *Node, lo, hi float64) *Node { return graph.Clip(x, lo, hi) }

// ToFloat converts int64 nodes to float64.
func ToFloat(x *Node) *Node { return graph.ToFloat(x) }

// Reductions and indexing.

// Sum reduces all elements to a scalar.
func Sum(x *Node) *Node { return graph.Sum(x) }

// Mean averages all elements into a scalar.
func Mean(x *Node) *Node { return graph.Mean(x) }

// FlattenRows reshapes x into (N, K) with K the last axis.
func FlattenRows(x *Node) *Node { return graph.FlattenRows(x) }

// Flatten reshapes x into a vector.
func Flatten(x *Node) *Node { return graph.Flatten(x) }

// TakeRows selects m[i, idx[i]] for every row.
func TakeRows(m, idx *Node) *Node { return graph.TakeRows(m, idx) }

// ArgMax returns the index of the maximum along the last axis.
func ArgMax(x *Node) *Node { return graph.ArgMax(x) }

// Equal returns a float indicator of a == b.
func Equal(a, b *Node) *Node { return graph.Equal(a, b) }

// Execution.

// Evaluate computes root given feeds.
func Evaluate(root *Node, feeds Feeds) (*tensor.Value, error) {
	return graph.Evaluate(root, feeds)
}

// EvaluateAll computes several roots sharing common subgraphs.
func EvaluateAll(roots []*Node, feeds Feeds) ([]*tensor.Value, error) {
	return graph.EvaluateAll(roots, feeds)
}

// Gradients returns d(root)/d(x) for each x in wrt.
func Gradients(root *Node, feeds Feeds, wrt ...*Node) ([]*tensor.Value, error) {
	return graph.Gradients(root, feeds, wrt...)
}
