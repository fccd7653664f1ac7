// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package losses

import (
	"github.com/born-ml/lossgraph/internal/graph"
	"github.com/born-ml/lossgraph/internal/loss"
	"github.com/born-ml/lossgraph/internal/tensor"
)

// Loss is a loss function over a model output expression.
type Loss = loss.Loss

// Options configures loss construction.
type Options = loss.Options

// Constructor creates a loss from options.
type Constructor = loss.Constructor

// Registry maps case-insensitive names to constructors.
type Registry = loss.Registry

// Variants

// MeanSquaredError is the MSE loss.
type MeanSquaredError = loss.MeanSquaredError

// MeanAbsoluteError is the MAE loss.
type MeanAbsoluteError = loss.MeanAbsoluteError

// Hinge is the hinge loss.
type Hinge = loss.Hinge

// CrossEntropy is the cross-entropy loss over class probabilities.
type CrossEntropy = loss.CrossEntropy

// ProbabilityFloor is the lower clip bound used by CrossEntropy.
const ProbabilityFloor = loss.ProbabilityFloor

// Errors.
var (
	ErrUnknownLoss    = loss.ErrUnknownLoss
	ErrDuplicateLoss  = loss.ErrDuplicateLoss
	ErrInvalidRank    = loss.ErrInvalidRank
	ErrMissingData    = loss.ErrMissingData
	ErrUnexpectedData = loss.ErrUnexpectedData
)

// NewMeanSquaredError creates an MSE loss.
func NewMeanSquaredError(opts Options) (*MeanSquaredError, error) {
	return loss.NewMeanSquaredError(opts)
}

// NewMeanAbsoluteError creates an MAE loss.
func NewMeanAbsoluteError(opts Options) (*MeanAbsoluteError, error) {
	return loss.NewMeanAbsoluteError(opts)
}

// NewHinge creates a hinge loss.
func NewHinge(opts Options) (*Hinge, error) {
	return loss.NewHinge(opts)
}

// NewCrossEntropy creates a cross-entropy loss.
//
// Example:
//
//	xe, _ := losses.NewCrossEntropy(losses.Options{InDim: 2, OutDim: 1})
//	loss := xe.Forward(probs)      // mean -log p[target]
//	acc := xe.Accuracy(probs)      // fraction of argmax hits
func NewCrossEntropy(opts Options) (*CrossEntropy, error) {
	return loss.NewCrossEntropy(opts)
}

// Registry

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return loss.NewRegistry()
}

// Build constructs a registered loss by case-insensitive name or alias.
//
// Example:
//
//	l, err := losses.Build("MSE", losses.Options{InDim: 2, OutDim: 2, Weighted: true})
func Build(name string, opts Options) (Loss, error) {
	return loss.Build(name, opts)
}

// Register adds a loss to the default registry.
func Register(name string, ctor Constructor, aliases ...string) error {
	return loss.Register(name, ctor, aliases...)
}

// Names returns the canonical registered loss names.
func Names() []string {
	return loss.Names()
}

// Aliases returns the aliases registered with name.
func Aliases(name string) []string {
	return loss.Default.Aliases(name)
}

// Feeding helpers

// Bind maps batch data onto the loss placeholders.
func Bind(l Loss, input, target, weight *tensor.Value) (graph.Feeds, error) {
	return loss.Bind(l, input, target, weight)
}

// Evaluate builds and evaluates l.Forward(output).
func Evaluate(l Loss, output *graph.Node, feeds graph.Feeds) (float64, error) {
	return loss.Evaluate(l, output, feeds)
}

// EvaluateAccuracy builds and evaluates the accuracy of a cross-entropy loss.
func EvaluateAccuracy(l *CrossEntropy, output *graph.Node, feeds graph.Feeds) (float64, error) {
	return loss.EvaluateAccuracy(l, output, feeds)
}

// Merge combines feeds; later arguments win.
func Merge(feeds ...graph.Feeds) graph.Feeds {
	return loss.Merge(feeds...)
}
