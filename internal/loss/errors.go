package loss

import (
	"errors"

	"github.com/born-ml/lossgraph/internal/graph"
)

// Common errors.
var (
	ErrUnknownLoss    = errors.New("unknown loss")
	ErrDuplicateLoss  = errors.New("loss already registered")
	ErrInvalidRank    = graph.ErrInvalidRank
	ErrMissingData    = errors.New("missing data for loss variable")
	ErrUnexpectedData = errors.New("data supplied for absent loss variable")
)
