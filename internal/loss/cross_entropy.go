package loss

import (
	"github.com/born-ml/lossgraph/internal/graph"
	"github.com/born-ml/lossgraph/internal/tensor"
	"github.com/pkg/errors"
)

// ProbabilityFloor is the lower clip bound applied to predicted
// probabilities before taking the log, bounding the per-example loss at
// -log(1e-8).
const ProbabilityFloor = 1e-8

// CrossEntropy is the cross-entropy (XE) loss over predicted class
// probabilities.
//
//	L(x, t) = -Σ_k p(t=k) log q(x=k)
//
// The output's last axis holds K class probabilities; the int64 target
// holds class indices for every leading position. The output must already
// be normalised (e.g. by softmax).
type CrossEntropy struct {
	base
}

// NewCrossEntropy creates a cross-entropy loss. The target placeholder is
// an int64 tensor of rank OutDim; the weight, if any, has the same rank.
func NewCrossEntropy(opts Options) (*CrossEntropy, error) {
	if err := checkRank("in_dim", opts.InDim); err != nil {
		return nil, err
	}
	if opts.InDim == 0 {
		return nil, errors.Wrap(ErrInvalidRank, "cross-entropy in_dim must be at least 1")
	}
	if err := checkRank("out_dim", opts.OutDim); err != nil {
		return nil, err
	}

	var b base
	b.input = mustPlaceholder(InputName, opts.InDim, tensor.Float64)
	b.target = mustPlaceholder(TargetName, opts.OutDim, tensor.Int64)
	b.variables = []*graph.Node{b.input, b.target}
	if opts.Weighted {
		b.weight = mustPlaceholder(WeightName, opts.OutDim, tensor.Float64)
		b.variables = append(b.variables, b.weight)
	}
	return &CrossEntropy{base: b}, nil
}

// Forward builds the mean negative log-probability of the target classes.
//
// output is flattened to (N, K); row i contributes
// -log(clip(output[i, target[i]], 1e-8, 1)).
func (l *CrossEntropy) Forward(output *graph.Node) *graph.Node {
	prob := graph.TakeRows(graph.FlattenRows(output), graph.Flatten(l.target))
	nlp := graph.Neg(graph.Log(graph.Clip(prob, ProbabilityFloor, 1)))
	if l.weight != nil {
		return graph.Div(graph.Sum(graph.Mul(graph.Flatten(l.weight), nlp)), graph.Sum(l.weight))
	}
	return graph.Mean(nlp)
}

// Accuracy builds the fraction of positions whose argmax over the last
// axis of output equals the target class, weighted like Forward.
func (l *CrossEntropy) Accuracy(output *graph.Node) *graph.Node {
	correct := graph.Equal(graph.ArgMax(output), l.target)
	return l.reduce(correct)
}
