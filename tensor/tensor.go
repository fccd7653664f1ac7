// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/lossgraph/internal/tensor"
)

// Value is a dense float64 or int64 array.
type Value = tensor.Value

// Shape represents the dimensions of a value.
type Shape = tensor.Shape

// DataType represents the element type of a value.
type DataType = tensor.DataType

// Data type constants.
const (
	Float64 DataType = tensor.Float64
	Int64   DataType = tensor.Int64
)

// MaxRank is the highest supported rank.
const MaxRank = tensor.MaxRank

// Errors.
var (
	ErrInvalidShape = tensor.ErrInvalidShape
	ErrDataLength   = tensor.ErrDataLength
	ErrDType        = tensor.ErrDType
)

// New creates a zero-filled value.
func New(shape Shape, dtype DataType) (*Value, error) {
	return tensor.New(shape, dtype)
}

// FromFloat64 wraps data as a float64 value of the given shape.
func FromFloat64(data []float64, shape Shape) (*Value, error) {
	return tensor.FromFloat64(data, shape)
}

// FromInt64 wraps data as an int64 value of the given shape.
func FromInt64(data []int64, shape Shape) (*Value, error) {
	return tensor.FromInt64(data, shape)
}

// MustFloat64 is like FromFloat64 but panics on error.
func MustFloat64(data []float64, shape Shape) *Value {
	return tensor.MustFloat64(data, shape)
}

// MustInt64 is like FromInt64 but panics on error.
func MustInt64(data []int64, shape Shape) *Value {
	return tensor.MustInt64(data, shape)
}

// Scalar returns a rank-0 float64 value.
func Scalar(x float64) *Value {
	return tensor.Scalar(x)
}

// Full returns a float64 value filled with x.
func Full(shape Shape, x float64) *Value {
	return tensor.Full(shape, x)
}
