// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/lossgraph/internal/graph"
	"github.com/born-ml/lossgraph/internal/optim"
	"github.com/born-ml/lossgraph/internal/tensor"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Parameter is a trainable placeholder and its current value.
type Parameter = optim.Parameter

// NewParameter creates a parameter initialised with a copy of init.
func NewParameter(name string, init *tensor.Value) (*Parameter, error) {
	return optim.NewParameter(name, init)
}

// Nodes returns the placeholders of params.
func Nodes(params []*Parameter) []*graph.Node {
	return optim.Nodes(params)
}

// Feeds returns data extended with the current parameter values.
func Feeds(params []*Parameter, data graph.Feeds) graph.Feeds {
	return optim.Feeds(params, data)
}

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer := optim.NewSGD(params, optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
func NewSGD(params []*Parameter, config SGDConfig) *SGD {
	return optim.NewSGD(params, config)
}
