// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient descent for parameters of expression
// graphs.
//
// # Overview
//
// This package contains:
//   - Parameter: a float placeholder paired with its current value
//   - SGD: Stochastic Gradient Descent with momentum
//   - Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	w, _ := optim.NewParameter("w", tensor.Scalar(0))
//	params := []*optim.Parameter{w}
//	sgd := optim.NewSGD(params, optim.SGDConfig{LR: 0.05, Momentum: 0.9})
//
//	expr := l.Forward(graph.Mul(l.Input(), w.Node))
//	for range steps {
//	    grads, err := graph.Gradients(expr, optim.Feeds(params, data), optim.Nodes(params)...)
//	    if err != nil {
//	        return err
//	    }
//	    if err := sgd.Step(grads); err != nil {
//	        return err
//	    }
//	}
package optim
