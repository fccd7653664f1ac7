package loss

import "github.com/born-ml/lossgraph/internal/graph"

// MeanAbsoluteError is the mean-absolute-error (MAE) loss.
//
//	L(x, t) = 1/d Σ |x_i - t_i|
//
// Weighted: Σ |w_i (x_i - t_i)| / Σ w_i. The weight is applied inside the
// absolute value, so negative weights still contribute positively to the
// numerator.
type MeanAbsoluteError struct {
	base
}

// NewMeanAbsoluteError creates an MAE loss.
func NewMeanAbsoluteError(opts Options) (*MeanAbsoluteError, error) {
	b, err := newBase(opts)
	if err != nil {
		return nil, err
	}
	return &MeanAbsoluteError{base: b}, nil
}

// Forward builds the MAE expression for output.
func (l *MeanAbsoluteError) Forward(output *graph.Node) *graph.Node {
	diff := l.Diff(output)
	if l.weight != nil {
		return graph.Div(graph.Sum(graph.Abs(graph.Mul(l.weight, diff))), graph.Sum(l.weight))
	}
	return graph.Mean(graph.Abs(diff))
}
