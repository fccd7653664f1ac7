// Package optim implements gradient-descent updates for graph parameters.
//
// A Parameter pairs a float placeholder with the value currently fed to it.
// Optimizers take the gradients returned by graph.Gradients, in parameter
// order, and update the values in place:
//
//	params := []*optim.Parameter{w, b}
//	sgd := optim.NewSGD(params, optim.SGDConfig{LR: 0.1})
//	for range steps {
//	    grads, _ := graph.Gradients(l.Forward(output), sgd.Feeds(data), sgd.Nodes()...)
//	    sgd.Step(grads)
//	}
package optim

import (
	"github.com/born-ml/lossgraph/internal/graph"
	"github.com/born-ml/lossgraph/internal/tensor"
	"github.com/pkg/errors"
)

// Optimizer updates parameters from gradients.
type Optimizer interface {
	// Step applies one update. grads[i] is the gradient of parameter i.
	Step(grads []*tensor.Value) error

	// GetLR returns the current learning rate.
	GetLR() float64

	// SetLR changes the learning rate.
	SetLR(lr float64)
}

// Parameter is a trainable float placeholder and its current value.
type Parameter struct {
	Node  *graph.Node
	Value *tensor.Value
}

// NewParameter creates a placeholder of the value's rank, bound to a copy
// of init.
func NewParameter(name string, init *tensor.Value) (*Parameter, error) {
	if init.DType() != tensor.Float64 {
		return nil, errors.Wrapf(tensor.ErrDType, "parameter %q must be float64", name)
	}
	n, err := graph.NewPlaceholder(name, init.Rank(), tensor.Float64)
	if err != nil {
		return nil, err
	}
	return &Parameter{Node: n, Value: init.Clone()}, nil
}

// Nodes returns the placeholders of params, in order.
func Nodes(params []*Parameter) []*graph.Node {
	out := make([]*graph.Node, len(params))
	for i, p := range params {
		out[i] = p.Node
	}
	return out
}

// Feeds returns data extended with the current parameter values.
func Feeds(params []*Parameter, data graph.Feeds) graph.Feeds {
	out := make(graph.Feeds, len(data)+len(params))
	for n, v := range data {
		out[n] = v
	}
	for _, p := range params {
		out[p.Node] = p.Value
	}
	return out
}
