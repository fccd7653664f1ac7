package graph

import (
	"math"

	"github.com/born-ml/lossgraph/internal/tensor"
)

// binaryOp is an elementwise float operation of two operands.
//
// deriv returns the partial derivatives with respect to x and y at (x, y).
type binaryOp struct {
	name  string
	fn    func(x, y float64) float64
	deriv func(x, y float64) (dx, dy float64)
}

func (op *binaryOp) Name() string { return op.name }

func (op *binaryOp) Forward(inputs []*tensor.Value) (*tensor.Value, error) {
	return zip(inputs[0], inputs[1], op.fn)
}

func (op *binaryOp) Backward(outputGrad *tensor.Value, inputs []*tensor.Value, _ *tensor.Value) []*tensor.Value {
	a, b := inputs[0], inputs[1]
	ad, bd := a.Float64s(), b.Float64s()
	g := outputGrad.Float64s()
	ga := tensor.Full(outputGrad.Shape(), 0)
	gb := tensor.Full(outputGrad.Shape(), 0)
	gad, gbd := ga.Float64s(), gb.Float64s()
	for k := range g {
		dx, dy := op.deriv(pick(ad, k), pick(bd, k))
		gad[k] = g[k] * dx
		gbd[k] = g[k] * dy
	}
	return []*tensor.Value{reduceLike(ga, a), reduceLike(gb, b)}
}

func binary(op *binaryOp, a, b *Node) *Node {
	requireFloat(op.name, a, b)
	return newNode(op, elementwiseRank(op.name, a, b), tensor.Float64, a, b)
}

// Add returns a + b.
func Add(a, b *Node) *Node {
	return binary(&binaryOp{
		name:  "Add",
		fn:    func(x, y float64) float64 { return x + y },
		deriv: func(float64, float64) (float64, float64) { return 1, 1 },
	}, a, b)
}

// Sub returns a - b.
func Sub(a, b *Node) *Node {
	return binary(&binaryOp{
		name:  "Sub",
		fn:    func(x, y float64) float64 { return x - y },
		deriv: func(float64, float64) (float64, float64) { return 1, -1 },
	}, a, b)
}

// Mul returns the elementwise product a * b.
func Mul(a, b *Node) *Node {
	return binary(&binaryOp{
		name:  "Mul",
		fn:    func(x, y float64) float64 { return x * y },
		deriv: func(x, y float64) (float64, float64) { return y, x },
	}, a, b)
}

// Div returns the elementwise quotient a / b.
func Div(a, b *Node) *Node {
	return binary(&binaryOp{
		name: "Div",
		fn:   func(x, y float64) float64 { return x / y },
		deriv: func(x, y float64) (float64, float64) {
			return 1 / y, -x / (y * y)
		},
	}, a, b)
}

// unaryOp is an elementwise float operation. deriv receives the input and
// output element and returns d(output)/d(input).
type unaryOp struct {
	name  string
	fn    func(x float64) float64
	deriv func(x, y float64) float64
}

func (op *unaryOp) Name() string { return op.name }

func (op *unaryOp) Forward(inputs []*tensor.Value) (*tensor.Value, error) {
	in := inputs[0].Float64s()
	out := tensor.Full(inputs[0].Shape(), 0)
	od := out.Float64s()
	for k, x := range in {
		od[k] = op.fn(x)
	}
	return out, nil
}

func (op *unaryOp) Backward(outputGrad *tensor.Value, inputs []*tensor.Value, output *tensor.Value) []*tensor.Value {
	in, out := inputs[0].Float64s(), output.Float64s()
	g := outputGrad.Float64s()
	grad := tensor.Full(inputs[0].Shape(), 0)
	gd := grad.Float64s()
	for k := range gd {
		gd[k] = g[k] * op.deriv(in[k], out[k])
	}
	return []*tensor.Value{grad}
}

func unary(op *unaryOp, x *Node) *Node {
	requireFloat(op.name, x)
	return newNode(op, x.rank, tensor.Float64, x)
}

// Neg returns -x.
func Neg(x *Node) *Node {
	return unary(&unaryOp{
		name:  "Neg",
		fn:    func(x float64) float64 { return -x },
		deriv: func(float64, float64) float64 { return -1 },
	}, x)
}

// Abs returns |x|. The subgradient at 0 is 0.
func Abs(x *Node) *Node {
	return unary(&unaryOp{
		name: "Abs",
		fn:   math.Abs,
		deriv: func(x, _ float64) float64 {
			switch {
			case x > 0:
				return 1
			case x < 0:
				return -1
			}
			return 0
		},
	}, x)
}

// Log returns the natural logarithm of x.
func Log(x *Node) *Node {
	return unary(&unaryOp{
		name:  "Log",
		fn:    math.Log,
		deriv: func(x, _ float64) float64 { return 1 / x },
	}, x)
}

// Maximum returns max(x, c) elementwise. Gradient flows where x > c.
func Maximum(x *Node, c float64) *Node {
	return unary(&unaryOp{
		name: "Maximum",
		fn:   func(x float64) float64 { return math.Max(x, c) },
		deriv: func(x, _ float64) float64 {
			if x > c {
				return 1
			}
			return 0
		},
	}, x)
}

// Clip limits x to [lo, hi]. Gradient flows where lo <= x <= hi.
func Clip(x *Node, lo, hi float64) *Node {
	return unary(&unaryOp{
		name: "Clip",
		fn: func(x float64) float64 {
			return math.Min(math.Max(x, lo), hi)
		},
		deriv: func(x, _ float64) float64 {
			if x >= lo && x <= hi {
				return 1
			}
			return 0
		},
	}, x)
}

// castOp converts int64 elements to float64.
type castOp struct{}

func (castOp) Name() string { return "ToFloat" }

func (castOp) Forward(inputs []*tensor.Value) (*tensor.Value, error) {
	return inputs[0].AsFloat64(), nil
}

func (castOp) Backward(outputGrad *tensor.Value, inputs []*tensor.Value, _ *tensor.Value) []*tensor.Value {
	return []*tensor.Value{gradFor(inputs[0], outputGrad)}
}

// ToFloat converts x to float64. Float nodes are returned unchanged.
func ToFloat(x *Node) *Node {
	if x.dtype.IsFloat() {
		return x
	}
	return newNode(castOp{}, x.rank, tensor.Float64, x)
}
