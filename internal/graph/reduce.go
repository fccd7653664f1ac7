package graph

import (
	"math"

	"github.com/born-ml/lossgraph/internal/tensor"
	"gonum.org/v1/gonum/floats"
)

// reduceOp sums (or averages) every element into a rank-0 float.
type reduceOp struct {
	mean bool
}

func (op *reduceOp) Name() string {
	if op.mean {
		return "Mean"
	}
	return "Sum"
}

func (op *reduceOp) Forward(inputs []*tensor.Value) (*tensor.Value, error) {
	in := inputs[0]
	s := in.Sum()
	if op.mean {
		n := in.NumElements()
		if n == 0 {
			return tensor.Scalar(math.NaN()), nil
		}
		s /= float64(n)
	}
	return tensor.Scalar(s), nil
}

func (op *reduceOp) Backward(outputGrad *tensor.Value, inputs []*tensor.Value, _ *tensor.Value) []*tensor.Value {
	in := inputs[0]
	if in.DType() != tensor.Float64 {
		return []*tensor.Value{nil}
	}
	g := tensor.Full(in.Shape(), outputGrad.Float64s()[0])
	if op.mean && in.NumElements() > 0 {
		floats.Scale(1/float64(in.NumElements()), g.Float64s())
	}
	return []*tensor.Value{g}
}

// Sum reduces every element of x to a float scalar.
func Sum(x *Node) *Node {
	return newNode(&reduceOp{}, 0, tensor.Float64, x)
}

// Mean averages every element of x into a float scalar. The mean of an
// empty value is NaN.
func Mean(x *Node) *Node {
	return newNode(&reduceOp{mean: true}, 0, tensor.Float64, x)
}
