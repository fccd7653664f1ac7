package tensor

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Value is a dense row-major array of float64 or int64 elements.
//
// Values are the concrete data fed to graph placeholders and produced by
// evaluation. Operations never modify their inputs; treat a Value as
// immutable once it has been fed to a graph.
type Value struct {
	shape Shape
	dtype DataType
	f     []float64
	i     []int64
}

// New creates a zero-filled value.
func New(shape Shape, dtype DataType) (*Value, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	v := &Value{shape: shape.Clone(), dtype: dtype}
	n := shape.NumElements()
	switch dtype {
	case Float64:
		v.f = make([]float64, n)
	case Int64:
		v.i = make([]int64, n)
	default:
		return nil, errors.Wrapf(ErrDType, "%v", dtype)
	}
	return v, nil
}

// FromFloat64 wraps data as a Float64 value. The slice is used directly.
func FromFloat64(data []float64, shape Shape) (*Value, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, errors.Wrapf(ErrDataLength, "got %d elements for shape %v", len(data), shape)
	}
	return &Value{shape: shape.Clone(), dtype: Float64, f: data}, nil
}

// FromInt64 wraps data as an Int64 value. The slice is used directly.
func FromInt64(data []int64, shape Shape) (*Value, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, errors.Wrapf(ErrDataLength, "got %d elements for shape %v", len(data), shape)
	}
	return &Value{shape: shape.Clone(), dtype: Int64, i: data}, nil
}

// MustFloat64 is like FromFloat64 but panics on error. Intended for tests
// and literals.
func MustFloat64(data []float64, shape Shape) *Value {
	v, err := FromFloat64(data, shape)
	if err != nil {
		panic(err)
	}
	return v
}

// MustInt64 is like FromInt64 but panics on error.
func MustInt64(data []int64, shape Shape) *Value {
	v, err := FromInt64(data, shape)
	if err != nil {
		panic(err)
	}
	return v
}

// Scalar returns a rank-0 Float64 value.
func Scalar(x float64) *Value {
	return &Value{shape: Shape{}, dtype: Float64, f: []float64{x}}
}

// Full returns a Float64 value of the given shape with every element set to x.
func Full(shape Shape, x float64) *Value {
	v := &Value{shape: shape.Clone(), dtype: Float64, f: make([]float64, shape.NumElements())}
	for k := range v.f {
		v.f[k] = x
	}
	return v
}

// ZerosLike returns a Float64 value of zeros with the shape of v.
func ZerosLike(v *Value) *Value {
	return Full(v.shape, 0)
}

// Shape returns the value's shape. The caller must not modify it.
func (v *Value) Shape() Shape { return v.shape }

// DType returns the element type.
func (v *Value) DType() DataType { return v.dtype }

// Rank returns the number of dimensions.
func (v *Value) Rank() int { return len(v.shape) }

// NumElements returns the number of elements.
func (v *Value) NumElements() int { return v.shape.NumElements() }

// Float64s returns the backing slice of a Float64 value.
func (v *Value) Float64s() []float64 {
	if v.dtype != Float64 {
		panic(fmt.Sprintf("Float64s called on %v value", v.dtype))
	}
	return v.f
}

// Int64s returns the backing slice of an Int64 value.
func (v *Value) Int64s() []int64 {
	if v.dtype != Int64 {
		panic(fmt.Sprintf("Int64s called on %v value", v.dtype))
	}
	return v.i
}

// At returns element k (flat index) converted to float64.
func (v *Value) At(k int) float64 {
	if v.dtype == Int64 {
		return float64(v.i[k])
	}
	return v.f[k]
}

// Item returns the only element of a single-element value.
func (v *Value) Item() (float64, error) {
	if v.NumElements() != 1 {
		return 0, errors.Wrapf(ErrInvalidShape, "Item on value of shape %v", v.shape)
	}
	return v.At(0), nil
}

// Sum returns the sum of all elements as float64.
func (v *Value) Sum() float64 {
	if v.dtype == Float64 {
		return floats.Sum(v.f)
	}
	var s int64
	for _, x := range v.i {
		s += x
	}
	return float64(s)
}

// AsFloat64 returns v itself if it is Float64, otherwise a converted copy.
func (v *Value) AsFloat64() *Value {
	if v.dtype == Float64 {
		return v
	}
	out := &Value{shape: v.shape.Clone(), dtype: Float64, f: make([]float64, len(v.i))}
	for k, x := range v.i {
		out.f[k] = float64(x)
	}
	return out
}

// Clone returns a deep copy.
func (v *Value) Clone() *Value {
	out := &Value{shape: v.shape.Clone(), dtype: v.dtype}
	if v.f != nil {
		out.f = append([]float64(nil), v.f...)
	}
	if v.i != nil {
		out.i = append([]int64(nil), v.i...)
	}
	return out
}

// Reshape returns a value sharing v's data with a new shape.
func (v *Value) Reshape(shape Shape) (*Value, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != v.NumElements() {
		return nil, errors.Wrapf(ErrInvalidShape, "cannot reshape %v into %v", v.shape, shape)
	}
	return &Value{shape: shape.Clone(), dtype: v.dtype, f: v.f, i: v.i}, nil
}

// String returns a short description such as "float64(2, 3)".
func (v *Value) String() string {
	return v.dtype.String() + v.shape.String()
}
