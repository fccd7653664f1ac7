package graph

import (
	"github.com/born-ml/lossgraph/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// reshapeOp views its input with a new shape computed from the input shape.
type reshapeOp struct {
	name  string
	shape func(tensor.Shape) tensor.Shape
}

func (op *reshapeOp) Name() string { return op.name }

func (op *reshapeOp) Forward(inputs []*tensor.Value) (*tensor.Value, error) {
	return inputs[0].Reshape(op.shape(inputs[0].Shape()))
}

func (op *reshapeOp) Backward(outputGrad *tensor.Value, inputs []*tensor.Value, _ *tensor.Value) []*tensor.Value {
	if inputs[0].DType() != tensor.Float64 {
		return []*tensor.Value{nil}
	}
	g, err := outputGrad.Reshape(inputs[0].Shape())
	if err != nil {
		panic(err)
	}
	return []*tensor.Value{g}
}

// rowsShape returns (N, K) where K is the trailing axis of s.
func rowsShape(s tensor.Shape) tensor.Shape {
	k := s.Last()
	if k == 0 {
		return tensor.Shape{0, 0}
	}
	return tensor.Shape{s.NumElements() / k, k}
}

// FlattenRows reshapes x of rank >= 1 into a matrix (N, K), where K is the
// size of the last axis and N the product of the leading axes.
func FlattenRows(x *Node) *Node {
	requireRankAtLeast("FlattenRows", x, 1)
	return newNode(&reshapeOp{name: "FlattenRows", shape: rowsShape}, 2, x.dtype, x)
}

// Flatten reshapes x into a vector.
func Flatten(x *Node) *Node {
	return newNode(&reshapeOp{
		name:  "Flatten",
		shape: func(s tensor.Shape) tensor.Shape { return tensor.Shape{s.NumElements()} },
	}, 1, x.dtype, x)
}

// takeRowsOp gathers m[i, idx[i]] for every row i.
type takeRowsOp struct{}

func (takeRowsOp) Name() string { return "TakeRows" }

func (takeRowsOp) Forward(inputs []*tensor.Value) (*tensor.Value, error) {
	m, idx := inputs[0], inputs[1]
	n, k := m.Shape()[0], m.Shape()[1]
	if idx.NumElements() != n {
		return nil, errors.Wrapf(ErrShapeMismatch, "TakeRows: %d indices for %d rows", idx.NumElements(), n)
	}
	md, id := m.Float64s(), idx.Int64s()
	out := tensor.Full(tensor.Shape{n}, 0)
	od := out.Float64s()
	for i, j := range id {
		if j < 0 || j >= int64(k) {
			return nil, errors.Wrapf(ErrIndexOutOfRange, "TakeRows: row %d index %d not in [0, %d)", i, j, k)
		}
		od[i] = md[i*k+int(j)]
	}
	return out, nil
}

func (takeRowsOp) Backward(outputGrad *tensor.Value, inputs []*tensor.Value, _ *tensor.Value) []*tensor.Value {
	m, idx := inputs[0], inputs[1]
	k := m.Shape()[1]
	grad := tensor.ZerosLike(m)
	gd, g := grad.Float64s(), outputGrad.Float64s()
	for i, j := range idx.Int64s() {
		gd[i*k+int(j)] += g[i]
	}
	return []*tensor.Value{grad, nil}
}

// TakeRows selects one element per row of the float matrix m, at the column
// given by the int64 vector idx.
func TakeRows(m, idx *Node) *Node {
	if m.rank != 2 || idx.rank != 1 {
		panic(errors.Wrapf(ErrRankMismatch, "TakeRows: want matrix and vector, got %v and %v", m, idx))
	}
	requireFloat("TakeRows", m)
	if idx.dtype != tensor.Int64 {
		panic(errors.Wrapf(ErrDTypeMismatch, "TakeRows: indices %v must be int64", idx))
	}
	return newNode(takeRowsOp{}, 1, tensor.Float64, m, idx)
}

// argMaxOp finds the index of the largest element along the last axis.
type argMaxOp struct{}

func (argMaxOp) Name() string { return "ArgMax" }

func (argMaxOp) Forward(inputs []*tensor.Value) (*tensor.Value, error) {
	in := inputs[0]
	shape := in.Shape()
	k := shape.Last()
	outShape := shape[:len(shape)-1].Clone()
	n := outShape.NumElements()
	if k == 0 && n > 0 {
		return nil, errors.Wrapf(ErrShapeMismatch, "ArgMax: empty last axis in %v", shape)
	}
	d := in.AsFloat64().Float64s()
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(floats.MaxIdx(d[i*k : (i+1)*k]))
	}
	return tensor.FromInt64(out, outShape)
}

func (argMaxOp) Backward(*tensor.Value, []*tensor.Value, *tensor.Value) []*tensor.Value {
	return []*tensor.Value{nil}
}

// ArgMax returns the int64 index of the maximum along the last axis of x.
// Ties resolve to the first index. The result has rank x.Rank()-1.
func ArgMax(x *Node) *Node {
	requireRankAtLeast("ArgMax", x, 1)
	return newNode(argMaxOp{}, x.rank-1, tensor.Int64, x)
}

// equalOp compares elementwise and yields 1.0 where equal, 0.0 elsewhere.
type equalOp struct{}

func (equalOp) Name() string { return "Equal" }

func (equalOp) Forward(inputs []*tensor.Value) (*tensor.Value, error) {
	return zip(inputs[0], inputs[1], func(x, y float64) float64 {
		if x == y {
			return 1
		}
		return 0
	})
}

func (equalOp) Backward(*tensor.Value, []*tensor.Value, *tensor.Value) []*tensor.Value {
	return []*tensor.Value{nil, nil}
}

// Equal returns a float indicator of a == b. Operands must share a data type.
func Equal(a, b *Node) *Node {
	if a.dtype != b.dtype {
		panic(errors.Wrapf(ErrDTypeMismatch, "Equal: %v and %v", a, b))
	}
	return newNode(equalOp{}, elementwiseRank("Equal", a, b), tensor.Float64, a, b)
}
