package graph

import (
	"github.com/born-ml/lossgraph/internal/tensor"
	"github.com/pkg/errors"
)

// Feeds binds placeholders to concrete values for one evaluation.
type Feeds map[*Node]*tensor.Value

// Evaluate computes the value of root given the placeholder feeds.
func Evaluate(root *Node, feeds Feeds) (*tensor.Value, error) {
	values, err := EvaluateAll([]*Node{root}, feeds)
	if err != nil {
		return nil, err
	}
	return values[0], nil
}

// EvaluateAll computes several nodes at once, sharing common subgraphs.
func EvaluateAll(roots []*Node, feeds Feeds) ([]*tensor.Value, error) {
	e := newEvaluator(feeds)
	if err := e.run(topoSort(roots)); err != nil {
		return nil, err
	}
	out := make([]*tensor.Value, len(roots))
	for i, r := range roots {
		out[i] = e.values[r]
	}
	return out, nil
}

type evaluator struct {
	feeds  Feeds
	values map[*Node]*tensor.Value
}

func newEvaluator(feeds Feeds) *evaluator {
	return &evaluator{
		feeds:  feeds,
		values: make(map[*Node]*tensor.Value),
	}
}

// run computes every node in order; order must be topological.
func (e *evaluator) run(order []*Node) error {
	for _, n := range order {
		if _, done := e.values[n]; done {
			continue
		}
		v, err := e.compute(n)
		if err != nil {
			return err
		}
		e.values[n] = v
	}
	return nil
}

func (e *evaluator) compute(n *Node) (*tensor.Value, error) {
	if n.IsPlaceholder() {
		return e.feed(n)
	}
	inputs := make([]*tensor.Value, len(n.inputs))
	for i, in := range n.inputs {
		inputs[i] = e.values[in]
	}
	v, err := n.op.Forward(inputs)
	if err != nil {
		return nil, errors.Wrapf(err, "evaluating %v", n)
	}
	return v, nil
}

func (e *evaluator) feed(n *Node) (*tensor.Value, error) {
	v, ok := e.feeds[n]
	if !ok || v == nil {
		return nil, errors.Wrapf(ErrMissingFeed, "%v", n)
	}
	if v.Rank() != n.rank {
		return nil, errors.Wrapf(ErrFeedMismatch, "%v: fed %v has rank %d", n, v, v.Rank())
	}
	if v.DType() != n.dtype {
		return nil, errors.Wrapf(ErrFeedMismatch, "%v: fed %v has type %v", n, v, v.DType())
	}
	return v, nil
}

// topoSort returns every node reachable from roots, inputs before users.
func topoSort(roots []*Node) []*Node {
	var (
		order   []*Node
		visited = make(map[*Node]bool)
	)
	type frame struct {
		n    *Node
		next int
	}
	for _, r := range roots {
		if visited[r] {
			continue
		}
		visited[r] = true
		stack := []frame{{n: r}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(top.n.inputs) {
				in := top.n.inputs[top.next]
				top.next++
				if !visited[in] {
					visited[in] = true
					stack = append(stack, frame{n: in})
				}
				continue
			}
			order = append(order, top.n)
			stack = stack[:len(stack)-1]
		}
	}
	return order
}
