package graph_test

import (
	"errors"
	"testing"

	"github.com/born-ml/lossgraph/internal/graph"
	"github.com/born-ml/lossgraph/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// numericalGradient computes d(root)/d(x) by central differences.
func numericalGradient(t *testing.T, root, x *graph.Node, feeds graph.Feeds) []float64 {
	t.Helper()
	const eps = 1e-6
	base := feeds[x]
	grad := make([]float64, base.NumElements())
	for k := range grad {
		plus, minus := base.Clone(), base.Clone()
		plus.Float64s()[k] += eps
		minus.Float64s()[k] -= eps

		f := func(v *tensor.Value) float64 {
			next := graph.Feeds{}
			for n, fv := range feeds {
				next[n] = fv
			}
			next[x] = v
			out, err := graph.Evaluate(root, next)
			require.NoError(t, err)
			return out.Float64s()[0]
		}
		grad[k] = (f(plus) - f(minus)) / (2 * eps)
	}
	return grad
}

func TestGradients_MatchNumerical(t *testing.T) {
	x := placeholder(t, "x", 1, tensor.Float64)
	y := placeholder(t, "y", 1, tensor.Float64)
	feeds := graph.Feeds{
		x: tensor.MustFloat64([]float64{0.3, -1.2, 2.5}, tensor.Shape{3}),
		y: tensor.MustFloat64([]float64{1.1, 0.4, 0.7}, tensor.Shape{3}),
	}

	tests := []struct {
		name string
		root *graph.Node
	}{
		{"SquaredMean", graph.Mean(graph.Mul(graph.Sub(x, y), graph.Sub(x, y)))},
		{"AbsSum", graph.Sum(graph.Abs(graph.Mul(y, graph.Sub(x, y))))},
		{"HingeMean", graph.Mean(graph.Maximum(graph.Sub(x, y), 0))},
		{"WeightedRatio", graph.Div(graph.Sum(graph.Mul(y, x)), graph.Sum(y))},
		{"LogClip", graph.Mean(graph.Neg(graph.Log(graph.Clip(x, 1e-8, 1))))},
		{"ScalarBroadcast", graph.Sum(graph.Mul(graph.Add(x, graph.Scalar(1)), graph.Scalar(3)))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grads, err := graph.Gradients(tt.root, feeds, x)
			require.NoError(t, err)
			want := numericalGradient(t, tt.root, x, feeds)
			assert.InDeltaSlice(t, want, grads[0].Float64s(), 1e-5)
		})
	}
}

func TestGradients_TakeRows(t *testing.T) {
	p := placeholder(t, "p", 2, tensor.Float64)
	idx := placeholder(t, "idx", 1, tensor.Int64)
	root := graph.Sum(graph.TakeRows(p, idx))

	feeds := graph.Feeds{
		p:   tensor.MustFloat64([]float64{0.2, 0.8, 0.6, 0.4}, tensor.Shape{2, 2}),
		idx: tensor.MustInt64([]int64{1, 0}, tensor.Shape{2}),
	}
	grads, err := graph.Gradients(root, feeds, p, idx)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 1, 0}, grads[0].Float64s())
	assert.Nil(t, grads[1])
}

func TestGradients_UnusedNodeIsZero(t *testing.T) {
	x := placeholder(t, "x", 1, tensor.Float64)
	z := placeholder(t, "z", 1, tensor.Float64)
	feeds := graph.Feeds{
		x: tensor.MustFloat64([]float64{1, 2}, tensor.Shape{2}),
		z: tensor.MustFloat64([]float64{5, 6, 7}, tensor.Shape{3}),
	}
	grads, err := graph.Gradients(graph.Sum(x), feeds, z)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, grads[0].Float64s())
}

func TestGradients_AccumulatesReuse(t *testing.T) {
	x := placeholder(t, "x", 0, tensor.Float64)
	root := graph.Add(graph.Mul(x, x), x)
	grads, err := graph.Gradients(root, graph.Feeds{x: tensor.Scalar(3)}, x)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, grads[0].Float64s()[0], 1e-12)
}

func TestGradients_RequiresScalarRoot(t *testing.T) {
	x := placeholder(t, "x", 1, tensor.Float64)
	_, err := graph.Gradients(graph.Neg(x), graph.Feeds{}, x)
	assert.True(t, errors.Is(err, graph.ErrNotScalar))
}
