package graph

import (
	"github.com/born-ml/lossgraph/internal/tensor"
	"github.com/pkg/errors"
)

// Operation is a differentiable computation producing a node's value.
//
// Forward computes the output from the input values. Backward receives the
// gradient of the root with respect to the output and returns one gradient
// per input, with nil meaning "no gradient flows to this input" (integer
// operands, indices, constants).
type Operation interface {
	Name() string
	Forward(inputs []*tensor.Value) (*tensor.Value, error)
	Backward(outputGrad *tensor.Value, inputs []*tensor.Value, output *tensor.Value) []*tensor.Value
}

// elementwiseRank returns the static rank of an elementwise combination of
// a and b. Ranks must match unless one side is a rank-0 scalar.
func elementwiseRank(op string, a, b *Node) int {
	switch {
	case a.rank == b.rank:
		return a.rank
	case a.rank == 0:
		return b.rank
	case b.rank == 0:
		return a.rank
	}
	panic(errors.Wrapf(ErrRankMismatch, "%s: %v and %v", op, a, b))
}

func requireFloat(op string, nodes ...*Node) {
	for _, n := range nodes {
		if !n.dtype.IsFloat() {
			panic(errors.Wrapf(ErrDTypeMismatch, "%s: operand %v must be float64", op, n))
		}
	}
}

func requireRankAtLeast(op string, n *Node, rank int) {
	if n.rank < rank {
		panic(errors.Wrapf(ErrRankMismatch, "%s: operand %v must have rank >= %d", op, n, rank))
	}
}

// broadcastShape returns the result shape of an elementwise op on a and b.
// Only rank-0 values broadcast.
func broadcastShape(a, b tensor.Shape) (tensor.Shape, error) {
	switch {
	case a.Equal(b):
		return a, nil
	case len(a) == 0:
		return b, nil
	case len(b) == 0:
		return a, nil
	}
	return nil, errors.Wrapf(ErrShapeMismatch, "%v and %v", a, b)
}

func pick(d []float64, k int) float64 {
	if len(d) == 1 {
		return d[0]
	}
	return d[k]
}

// zip applies f elementwise over two float values, broadcasting scalars.
func zip(a, b *tensor.Value, f func(x, y float64) float64) (*tensor.Value, error) {
	shape, err := broadcastShape(a.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}
	ad, bd := a.AsFloat64().Float64s(), b.AsFloat64().Float64s()
	out := tensor.Full(shape, 0)
	od := out.Float64s()
	for k := range od {
		od[k] = f(pick(ad, k), pick(bd, k))
	}
	return out, nil
}

// reduceLike folds an elementwise gradient back onto an operand that was
// broadcast from a scalar.
func reduceLike(grad, like *tensor.Value) *tensor.Value {
	if like.Rank() == 0 && grad.Rank() != 0 {
		return tensor.Scalar(grad.Sum())
	}
	return grad
}

func gradFor(in *tensor.Value, grad *tensor.Value) *tensor.Value {
	if in.DType() != tensor.Float64 {
		return nil
	}
	return reduceLike(grad, in)
}
