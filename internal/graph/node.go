// Package graph implements a small symbolic expression graph with typed
// placeholders, a feed-driven evaluator and reverse-mode gradients.
//
// Nodes are built with the package-level constructors (Sub, Mul, Sum, ...)
// and carry only their rank and element type; concrete shapes are known
// once placeholders are fed at evaluation time:
//
//	x, _ := graph.NewPlaceholder("x", 1, tensor.Float64)
//	loss := graph.Mean(graph.Mul(x, x))
//	v, err := graph.Evaluate(loss, graph.Feeds{x: tensor.MustFloat64(data, tensor.Shape{3})})
package graph

import (
	"fmt"
	"sync/atomic"

	"github.com/born-ml/lossgraph/internal/tensor"
	"github.com/pkg/errors"
)

var nextID atomic.Int64

// Node is a vertex of an expression graph. Nodes are immutable after
// construction and may be shared between graphs and goroutines.
type Node struct {
	id     int64
	name   string
	op     Operation // nil for placeholders
	inputs []*Node
	rank   int
	dtype  tensor.DataType
}

func newNode(op Operation, rank int, dtype tensor.DataType, inputs ...*Node) *Node {
	return &Node{
		id:     nextID.Add(1),
		op:     op,
		inputs: inputs,
		rank:   rank,
		dtype:  dtype,
	}
}

// NewPlaceholder creates a named input slot of the given rank (0..4) and
// element type. Its value is supplied through Feeds at evaluation time.
func NewPlaceholder(name string, rank int, dtype tensor.DataType) (*Node, error) {
	if rank < 0 || rank > tensor.MaxRank {
		return nil, errors.Wrapf(ErrInvalidRank, "placeholder %q: rank %d not in [0, %d]", name, rank, tensor.MaxRank)
	}
	n := newNode(nil, rank, dtype)
	n.name = name
	return n, nil
}

// Const embeds a fixed value in the graph.
func Const(v *tensor.Value) *Node {
	return newNode(&constOp{value: v}, v.Rank(), v.DType())
}

// Scalar embeds a float64 constant of rank 0.
func Scalar(x float64) *Node {
	return Const(tensor.Scalar(x))
}

// ID returns the unique node identifier. IDs increase in creation order.
func (n *Node) ID() int64 { return n.id }

// Name returns the placeholder name, or "" for computed nodes.
func (n *Node) Name() string { return n.name }

// Rank returns the static number of dimensions.
func (n *Node) Rank() int { return n.rank }

// DType returns the static element type.
func (n *Node) DType() tensor.DataType { return n.dtype }

// Inputs returns the node's operands.
func (n *Node) Inputs() []*Node { return n.inputs }

// Operation returns the producing operation, nil for placeholders.
func (n *Node) Operation() Operation { return n.op }

// IsPlaceholder reports whether the node is a feedable input.
func (n *Node) IsPlaceholder() bool { return n.op == nil }

// String describes the node, e.g. "target:float64/2" or "Sub#17:float64/2".
func (n *Node) String() string {
	if n.op == nil {
		return fmt.Sprintf("%s:%v/%d", n.name, n.dtype, n.rank)
	}
	return fmt.Sprintf("%s#%d:%v/%d", n.op.Name(), n.id, n.dtype, n.rank)
}

type constOp struct {
	value *tensor.Value
}

func (op *constOp) Name() string { return "Const" }

func (op *constOp) Forward([]*tensor.Value) (*tensor.Value, error) {
	return op.value, nil
}

func (op *constOp) Backward(*tensor.Value, []*tensor.Value, *tensor.Value) []*tensor.Value {
	return nil
}
