package tensor

import "errors"

// Common errors.
var (
	ErrInvalidShape = errors.New("invalid shape")
	ErrDataLength   = errors.New("data length does not match shape")
	ErrDType        = errors.New("unexpected data type")
)
