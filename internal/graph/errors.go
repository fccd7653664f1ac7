package graph

import "errors"

// Graph construction errors. Builders panic with these wrapped in context,
// since a malformed graph is a programming error.
var (
	ErrInvalidRank   = errors.New("invalid rank")
	ErrRankMismatch  = errors.New("rank mismatch")
	ErrDTypeMismatch = errors.New("data type mismatch")
)

// Evaluation errors, returned by Evaluate and Gradients.
var (
	ErrMissingFeed     = errors.New("no value fed for placeholder")
	ErrFeedMismatch    = errors.New("fed value does not match placeholder")
	ErrShapeMismatch   = errors.New("incompatible shapes")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNotScalar       = errors.New("gradient root must be a float scalar")
)
