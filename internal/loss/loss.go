// Package loss implements scalar loss functions as symbolic expression
// builders.
//
// Each loss owns its input, target and weight placeholders. Forward builds
// a new scalar expression from a model output node; it holds no state
// besides the placeholders created at construction:
//
//	l, _ := loss.Build("mse", loss.Options{InDim: 2, OutDim: 2, Weighted: true})
//	expr := l.Forward(output)
//	grads, _ := graph.Gradients(expr, feeds, params...)
package loss

import (
	"github.com/born-ml/lossgraph/internal/graph"
	"github.com/born-ml/lossgraph/internal/tensor"
	"github.com/pkg/errors"
)

// Placeholder names used by every loss.
const (
	InputName  = "input"
	TargetName = "target"
	WeightName = "weight"
)

// Options configures loss construction.
type Options struct {
	// InDim is the rank (0..4) of the input placeholder.
	InDim int `yaml:"in_dim"`

	// OutDim is the rank of the target placeholder. Zero means there is no
	// target and the output is compared against the input itself
	// (autoencoders). CrossEntropy always has a target and accepts zero as
	// a scalar target.
	OutDim int `yaml:"out_dim"`

	// Weighted adds a float weight placeholder of rank OutDim, or InDim
	// when there is no target.
	Weighted bool `yaml:"weighted"`
}

// Loss is a loss function over a model output expression.
type Loss interface {
	// Input returns the input placeholder.
	Input() *graph.Node

	// Target returns the target placeholder, or nil when the input doubles
	// as the target.
	Target() *graph.Node

	// Weight returns the weight placeholder, or nil when unweighted.
	Weight() *graph.Node

	// Variables lists the placeholders in order input, target, weight,
	// skipping absent ones.
	Variables() []*graph.Node

	// Diff returns output minus the target (or the input if there is none).
	Diff(output *graph.Node) *graph.Node

	// Forward builds the scalar loss expression for output.
	Forward(output *graph.Node) *graph.Node
}

// base holds the placeholders shared by all losses.
type base struct {
	input     *graph.Node
	target    *graph.Node
	weight    *graph.Node
	variables []*graph.Node
}

func checkRank(what string, rank int) error {
	if rank < 0 || rank > tensor.MaxRank {
		return errors.Wrapf(ErrInvalidRank, "%s %d not in [0, %d]", what, rank, tensor.MaxRank)
	}
	return nil
}

func newBase(opts Options) (base, error) {
	var b base
	if err := checkRank("in_dim", opts.InDim); err != nil {
		return b, err
	}
	if err := checkRank("out_dim", opts.OutDim); err != nil {
		return b, err
	}

	b.input = mustPlaceholder(InputName, opts.InDim, tensor.Float64)
	b.variables = []*graph.Node{b.input}
	if opts.OutDim != 0 {
		b.target = mustPlaceholder(TargetName, opts.OutDim, tensor.Float64)
		b.variables = append(b.variables, b.target)
	}
	if opts.Weighted {
		rank := opts.OutDim
		if rank == 0 {
			rank = opts.InDim
		}
		b.weight = mustPlaceholder(WeightName, rank, tensor.Float64)
		b.variables = append(b.variables, b.weight)
	}
	return b, nil
}

// mustPlaceholder creates a placeholder whose rank was already validated.
func mustPlaceholder(name string, rank int, dtype tensor.DataType) *graph.Node {
	n, err := graph.NewPlaceholder(name, rank, dtype)
	if err != nil {
		panic(err)
	}
	return n
}

func (b *base) Input() *graph.Node  { return b.input }
func (b *base) Target() *graph.Node { return b.target }
func (b *base) Weight() *graph.Node { return b.weight }

func (b *base) Variables() []*graph.Node {
	return append([]*graph.Node(nil), b.variables...)
}

func (b *base) Diff(output *graph.Node) *graph.Node {
	if b.target == nil {
		return graph.Sub(output, b.input)
	}
	return graph.Sub(output, graph.ToFloat(b.target))
}

// reduce averages x, or takes its weight-normalised sum when weighted.
func (b *base) reduce(x *graph.Node) *graph.Node {
	if b.weight != nil {
		return graph.Div(graph.Sum(graph.Mul(b.weight, x)), graph.Sum(b.weight))
	}
	return graph.Mean(x)
}
