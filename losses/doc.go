// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package losses provides scalar loss functions for training models built
// as symbolic expression graphs.
//
// # Overview
//
// This package contains:
//   - MeanSquaredError ("mse")
//   - MeanAbsoluteError ("mae")
//   - Hinge ("hinge")
//   - CrossEntropy ("xe"), with an Accuracy expression
//   - A case-insensitive registry: Build, Register, Names
//
// Every loss owns its input, target and weight placeholders. Forward turns a
// model output node into a scalar expression that can be evaluated or
// differentiated with the graph package.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/lossgraph/graph"
//	    "github.com/born-ml/lossgraph/losses"
//	)
//
//	func main() {
//	    l, err := losses.Build("xe", losses.Options{InDim: 2, OutDim: 1})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    probs, _ := graph.NewPlaceholder("probs", 2, tensor.Float64)
//	    xe := l.Forward(probs)
//	    acc := l.(*losses.CrossEntropy).Accuracy(probs)
//
//	    feeds := graph.Feeds{probs: p, l.Target(): labels}
//	    grads, err := graph.Gradients(xe, feeds, probs)
//	    ...
//	}
//
// # Weighting
//
// With Options.Weighted, every variant normalises by the total weight:
// Σ w·err / Σ w. A uniform weight therefore gives the unweighted value.
// MeanAbsoluteError applies the weight inside the absolute value.
package losses
