package loss

import "github.com/born-ml/lossgraph/internal/graph"

// Hinge penalises outputs that exceed their target.
//
//	L(x, t) = x - t if x > t, 0 otherwise
type Hinge struct {
	base
}

// NewHinge creates a hinge loss.
func NewHinge(opts Options) (*Hinge, error) {
	b, err := newBase(opts)
	if err != nil {
		return nil, err
	}
	return &Hinge{base: b}, nil
}

// Forward builds the hinge expression for output.
func (l *Hinge) Forward(output *graph.Node) *graph.Node {
	return l.reduce(graph.Maximum(l.Diff(output), 0))
}
