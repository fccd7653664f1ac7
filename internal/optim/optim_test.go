package optim_test

import (
	"testing"

	"github.com/born-ml/lossgraph/internal/graph"
	"github.com/born-ml/lossgraph/internal/loss"
	"github.com/born-ml/lossgraph/internal/optim"
	"github.com/born-ml/lossgraph/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSGD_Step(t *testing.T) {
	p, err := optim.NewParameter("w", tensor.MustFloat64([]float64{1, 2}, tensor.Shape{2}))
	require.NoError(t, err)
	sgd := optim.NewSGD([]*optim.Parameter{p}, optim.SGDConfig{LR: 0.5})

	require.NoError(t, sgd.Step([]*tensor.Value{tensor.MustFloat64([]float64{2, -2}, tensor.Shape{2})}))
	assert.InDeltaSlice(t, []float64{0, 3}, p.Value.Float64s(), 1e-12)

	require.NoError(t, sgd.Step([]*tensor.Value{nil}))
	assert.InDeltaSlice(t, []float64{0, 3}, p.Value.Float64s(), 1e-12)
}

func TestSGD_Momentum(t *testing.T) {
	p, err := optim.NewParameter("w", tensor.Scalar(0))
	require.NoError(t, err)
	sgd := optim.NewSGD([]*optim.Parameter{p}, optim.SGDConfig{LR: 1, Momentum: 0.5})

	g := []*tensor.Value{tensor.Scalar(1)}
	require.NoError(t, sgd.Step(g)) // v = 1, w = -1
	require.NoError(t, sgd.Step(g)) // v = 1.5, w = -2.5
	assert.InDelta(t, -2.5, p.Value.Float64s()[0], 1e-12)
}

func TestSGD_Errors(t *testing.T) {
	p, err := optim.NewParameter("w", tensor.Scalar(0))
	require.NoError(t, err)
	sgd := optim.NewSGD([]*optim.Parameter{p}, optim.SGDConfig{})
	assert.Equal(t, 0.01, sgd.GetLR())
	sgd.SetLR(0.2)
	assert.Equal(t, 0.2, sgd.GetLR())

	assert.Error(t, sgd.Step(nil))
	assert.Error(t, sgd.Step([]*tensor.Value{tensor.Full(tensor.Shape{2}, 1)}))

	_, err = optim.NewParameter("i", tensor.MustInt64([]int64{1}, tensor.Shape{1}))
	assert.Error(t, err)
}

// TestSGD_FitsLinearModel trains y = w*x + b under the MSE loss.
func TestSGD_FitsLinearModel(t *testing.T) {
	x := tensor.MustFloat64([]float64{-2, -1, 0, 1, 2, 3}, tensor.Shape{6})
	y := tensor.MustFloat64([]float64{-3, -1, 1, 3, 5, 7}, tensor.Shape{6}) // 2x + 1

	l, err := loss.Build("mse", loss.Options{InDim: 1, OutDim: 1})
	require.NoError(t, err)

	w, err := optim.NewParameter("w", tensor.Scalar(0))
	require.NoError(t, err)
	b, err := optim.NewParameter("b", tensor.Scalar(0))
	require.NoError(t, err)
	params := []*optim.Parameter{w, b}

	output := graph.Add(graph.Mul(l.Input(), w.Node), b.Node)
	expr := l.Forward(output)
	data, err := loss.Bind(l, x, y, nil)
	require.NoError(t, err)

	sgd := optim.NewSGD(params, optim.SGDConfig{LR: 0.05, Momentum: 0.5})
	for step := 0; step < 2000; step++ {
		grads, err := graph.Gradients(expr, optim.Feeds(params, data), optim.Nodes(params)...)
		require.NoError(t, err)
		require.NoError(t, sgd.Step(grads))
	}

	final, err := loss.Evaluate(l, output, optim.Feeds(params, data))
	require.NoError(t, err)
	assert.Less(t, final, 1e-6)
	assert.InDelta(t, 2.0, w.Value.Float64s()[0], 1e-3)
	assert.InDelta(t, 1.0, b.Value.Float64s()[0], 1e-3)
}
