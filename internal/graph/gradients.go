package graph

import (
	"github.com/born-ml/lossgraph/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Gradients evaluates root and returns d(root)/d(x) for each node in wrt.
//
// root must be a rank-0 float node. Nodes in wrt that root does not depend
// on get zero gradients; integer nodes always get nil.
//
// Algorithm:
//  1. Evaluate root and wrt in topological order
//  2. Seed the root gradient with 1
//  3. Walk the order in reverse, calling Backward on each operation
//  4. Accumulate gradients of nodes used more than once
func Gradients(root *Node, feeds Feeds, wrt ...*Node) ([]*tensor.Value, error) {
	if root.rank != 0 || !root.dtype.IsFloat() {
		return nil, errors.Wrapf(ErrNotScalar, "got %v", root)
	}

	order := topoSort(append([]*Node{root}, wrt...))
	e := newEvaluator(feeds)
	if err := e.run(order); err != nil {
		return nil, err
	}

	grads := map[*Node]*tensor.Value{root: tensor.Scalar(1)}
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		g, ok := grads[n]
		if !ok || n.IsPlaceholder() {
			continue
		}
		inputs := make([]*tensor.Value, len(n.inputs))
		for k, in := range n.inputs {
			inputs[k] = e.values[in]
		}
		inputGrads := n.op.Backward(g, inputs, e.values[n])
		for k, ig := range inputGrads {
			if ig == nil {
				continue
			}
			accumulate(grads, n.inputs[k], ig)
		}
	}

	out := make([]*tensor.Value, len(wrt))
	for i, w := range wrt {
		if !w.dtype.IsFloat() {
			continue
		}
		if g, ok := grads[w]; ok {
			out[i] = g
		} else {
			out[i] = tensor.ZerosLike(e.values[w])
		}
	}
	return out, nil
}

func accumulate(grads map[*Node]*tensor.Value, n *Node, g *tensor.Value) {
	prev, ok := grads[n]
	if !ok {
		grads[n] = g
		return
	}
	sum := prev.Clone()
	floats.Add(sum.Float64s(), g.Float64s())
	grads[n] = sum
}
