// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense values fed to loss placeholders.
//
// # Overview
//
// A Value is a row-major array of float64 or int64 elements with a Shape of
// rank 0 to 4. Values carry no device or backend; they are plain data bound
// to graph placeholders at evaluation time.
//
// # Basic Usage
//
//	import "github.com/born-ml/lossgraph/tensor"
//
//	func main() {
//	    x, err := tensor.FromFloat64([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    labels := tensor.MustInt64([]int64{0, 1}, tensor.Shape{2})
//	    fmt.Println(x, labels) // float64(2, 2) int64(2)
//	}
//
// # Supported Data Types
//
//   - Float64 for inputs, targets, weights and model outputs
//   - Int64 for class indices (cross-entropy targets)
package tensor
