package loss

import "github.com/born-ml/lossgraph/internal/graph"

// MeanSquaredError is the mean-squared-error (MSE) loss.
//
//	L(x, t) = 1/d Σ (x_i - t_i)²
//
// Weighted: Σ w_i (x_i - t_i)² / Σ w_i.
type MeanSquaredError struct {
	base
}

// NewMeanSquaredError creates an MSE loss.
func NewMeanSquaredError(opts Options) (*MeanSquaredError, error) {
	b, err := newBase(opts)
	if err != nil {
		return nil, err
	}
	return &MeanSquaredError{base: b}, nil
}

// Forward builds the MSE expression for output.
func (l *MeanSquaredError) Forward(output *graph.Node) *graph.Node {
	diff := l.Diff(output)
	return l.reduce(graph.Mul(diff, diff))
}
