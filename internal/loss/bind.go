package loss

import (
	"github.com/born-ml/lossgraph/internal/graph"
	"github.com/born-ml/lossgraph/internal/tensor"
	"github.com/pkg/errors"
)

// Bind maps batch data onto the loss placeholders. target and weight must
// be non-nil exactly when the loss has the corresponding placeholder.
func Bind(l Loss, input, target, weight *tensor.Value) (graph.Feeds, error) {
	feeds := graph.Feeds{}
	pairs := []struct {
		name string
		node *graph.Node
		data *tensor.Value
	}{
		{InputName, l.Input(), input},
		{TargetName, l.Target(), target},
		{WeightName, l.Weight(), weight},
	}
	for _, p := range pairs {
		switch {
		case p.node == nil && p.data != nil:
			return nil, errors.Wrapf(ErrUnexpectedData, "%s", p.name)
		case p.node != nil && p.data == nil:
			return nil, errors.Wrapf(ErrMissingData, "%s", p.name)
		case p.node != nil:
			feeds[p.node] = p.data
		}
	}
	return feeds, nil
}

// Evaluate builds l.Forward(output) and evaluates it to a float.
func Evaluate(l Loss, output *graph.Node, feeds graph.Feeds) (float64, error) {
	return scalar(l.Forward(output), feeds)
}

// EvaluateAccuracy builds the accuracy of a cross-entropy loss and
// evaluates it to a float.
func EvaluateAccuracy(l *CrossEntropy, output *graph.Node, feeds graph.Feeds) (float64, error) {
	return scalar(l.Accuracy(output), feeds)
}

func scalar(n *graph.Node, feeds graph.Feeds) (float64, error) {
	v, err := graph.Evaluate(n, feeds)
	if err != nil {
		return 0, err
	}
	return v.Item()
}

// Merge returns a new Feeds holding the bindings of all arguments. Later
// arguments win on conflict.
func Merge(feeds ...graph.Feeds) graph.Feeds {
	out := graph.Feeds{}
	for _, f := range feeds {
		for n, v := range f {
			out[n] = v
		}
	}
	return out
}
