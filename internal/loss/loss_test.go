package loss_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/born-ml/lossgraph/internal/graph"
	"github.com/born-ml/lossgraph/internal/loss"
	"github.com/born-ml/lossgraph/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(data ...float64) *tensor.Value {
	return tensor.MustFloat64(data, tensor.Shape{len(data)})
}

func output(t *testing.T, rank int) *graph.Node {
	t.Helper()
	n, err := graph.NewPlaceholder("output", rank, tensor.Float64)
	require.NoError(t, err)
	return n
}

// evalLoss evaluates l on out against input/target/weight data.
func evalLoss(t *testing.T, l loss.Loss, out *graph.Node, outData, input, target, weight *tensor.Value) float64 {
	t.Helper()
	feeds, err := loss.Bind(l, input, target, weight)
	require.NoError(t, err)
	feeds[out] = outData
	v, err := loss.Evaluate(l, out, feeds)
	require.NoError(t, err)
	return v
}

func TestNewBase_Placeholders(t *testing.T) {
	tests := []struct {
		name       string
		opts       loss.Options
		wantVars   []string
		weightRank int
	}{
		{"input only", loss.Options{InDim: 2}, []string{"input"}, -1},
		{"with target", loss.Options{InDim: 2, OutDim: 1}, []string{"input", "target"}, -1},
		{"weighted autoencoder", loss.Options{InDim: 3, Weighted: true}, []string{"input", "weight"}, 3},
		{"weighted with target", loss.Options{InDim: 2, OutDim: 1, Weighted: true}, []string{"input", "target", "weight"}, 1},
		{"scalar input", loss.Options{InDim: 0}, []string{"input"}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := loss.NewMeanSquaredError(tt.opts)
			require.NoError(t, err)

			var names []string
			for _, v := range l.Variables() {
				names = append(names, v.Name())
				assert.Equal(t, tensor.Float64, v.DType())
			}
			assert.Equal(t, tt.wantVars, names)
			assert.Equal(t, tt.opts.InDim, l.Input().Rank())

			if tt.opts.OutDim != 0 {
				require.NotNil(t, l.Target())
				assert.Equal(t, tt.opts.OutDim, l.Target().Rank())
			} else {
				assert.Nil(t, l.Target())
			}
			if tt.weightRank >= 0 {
				require.NotNil(t, l.Weight())
				assert.Equal(t, tt.weightRank, l.Weight().Rank())
			} else {
				assert.Nil(t, l.Weight())
			}
		})
	}
}

func TestNewBase_InvalidRank(t *testing.T) {
	for _, opts := range []loss.Options{{InDim: 5}, {InDim: -1}, {InDim: 1, OutDim: 9}, {InDim: 1, OutDim: -2}} {
		_, err := loss.NewHinge(opts)
		assert.True(t, errors.Is(err, loss.ErrInvalidRank), "opts %+v", opts)
	}
}

func TestVariables_IsCopy(t *testing.T) {
	l, err := loss.NewMeanSquaredError(loss.Options{InDim: 1, OutDim: 1})
	require.NoError(t, err)
	vars := l.Variables()
	vars[0] = nil
	assert.NotNil(t, l.Variables()[0])
}

func TestDiff(t *testing.T) {
	out := output(t, 1)
	x, y := vec(1, 2, 3), vec(3, 2, 1)

	auto, err := loss.NewMeanSquaredError(loss.Options{InDim: 1})
	require.NoError(t, err)
	v, err := graph.Evaluate(auto.Diff(out), graph.Feeds{out: y, auto.Input(): x})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0, -2}, v.Float64s())

	sup, err := loss.NewMeanSquaredError(loss.Options{InDim: 1, OutDim: 1})
	require.NoError(t, err)
	v, err = graph.Evaluate(sup.Diff(out), graph.Feeds{out: x, sup.Target(): y})
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, 0, 2}, v.Float64s())
}

func TestMeanSquaredError(t *testing.T) {
	l, err := loss.NewMeanSquaredError(loss.Options{InDim: 1, OutDim: 1})
	require.NoError(t, err)
	out := output(t, 1)

	got := evalLoss(t, l, out, vec(1, 2, 3), vec(0, 0, 0), vec(1.5, 1, 5), nil)
	assert.InDelta(t, 1.75, got, 1e-12)
}

func TestMeanSquaredError_ArithmeticMean(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	l, err := loss.NewMeanSquaredError(loss.Options{InDim: 2, OutDim: 2})
	require.NoError(t, err)
	out := output(t, 2)

	for trial := 0; trial < 10; trial++ {
		o := make([]float64, 12)
		tg := make([]float64, 12)
		var want float64
		for i := range o {
			o[i], tg[i] = rng.NormFloat64(), rng.NormFloat64()
			want += (o[i] - tg[i]) * (o[i] - tg[i])
		}
		want /= 12

		shape := tensor.Shape{3, 4}
		got := evalLoss(t, l, out, tensor.MustFloat64(o, shape), tensor.Full(shape, 0),
			tensor.MustFloat64(tg, shape), nil)
		assert.InDelta(t, want, got, 1e-12)
	}
}

func TestMeanSquaredError_Autoencoder(t *testing.T) {
	l, err := loss.Build("mse", loss.Options{InDim: 1})
	require.NoError(t, err)
	out := output(t, 1)

	got := evalLoss(t, l, out, vec(1, 1), vec(0, 3), nil, nil)
	assert.InDelta(t, 2.5, got, 1e-12)
}

func TestMeanAbsoluteError(t *testing.T) {
	l, err := loss.NewMeanAbsoluteError(loss.Options{InDim: 1, OutDim: 1})
	require.NoError(t, err)
	out := output(t, 1)

	got := evalLoss(t, l, out, vec(1, 2, 3), vec(0, 0, 0), vec(1.5, 1, 5), nil)
	assert.InDelta(t, 3.5/3, got, 1e-12)
}

func TestMeanAbsoluteError_WeightInsideAbs(t *testing.T) {
	l, err := loss.NewMeanAbsoluteError(loss.Options{InDim: 1, OutDim: 1, Weighted: true})
	require.NoError(t, err)
	out := output(t, 1)

	// diff = (1, 2), weight = (-1, 2): Σ|w·d| / Σw = (1 + 4) / 1.
	got := evalLoss(t, l, out, vec(1, 2), vec(0, 0), vec(0, 0), vec(-1, 2))
	assert.InDelta(t, 5.0, got, 1e-12)
}

func TestHinge(t *testing.T) {
	l, err := loss.NewHinge(loss.Options{InDim: 1, OutDim: 1})
	require.NoError(t, err)
	out := output(t, 1)

	got := evalLoss(t, l, out, vec(1, 2, 3, -4), vec(0, 0, 0, 0), vec(0, 3, 1, 0), nil)
	assert.InDelta(t, 3.0/4, got, 1e-12)
}

func TestHinge_NonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	l, err := loss.NewHinge(loss.Options{InDim: 1, OutDim: 1, Weighted: true})
	require.NoError(t, err)
	out := output(t, 1)

	for trial := 0; trial < 20; trial++ {
		o, tg, w := make([]float64, 5), make([]float64, 5), make([]float64, 5)
		for i := range o {
			o[i], tg[i], w[i] = rng.NormFloat64()*3, rng.NormFloat64()*3, rng.Float64()+0.1
		}
		got := evalLoss(t, l, out, vec(o...), vec(make([]float64, 5)...), vec(tg...), vec(w...))
		assert.GreaterOrEqual(t, got, 0.0)
	}
}

func TestWeighted_UniformMatchesUnweighted(t *testing.T) {
	o := vec(0.5, -1, 2, 4)
	in := vec(0, 0, 0, 0)
	tg := vec(1, 1, 1, 1)

	for _, name := range []string{"mse", "mae", "hinge"} {
		for _, c := range []float64{1, 0.25, 7} {
			plain, err := loss.Build(name, loss.Options{InDim: 1, OutDim: 1})
			require.NoError(t, err)
			weighted, err := loss.Build(name, loss.Options{InDim: 1, OutDim: 1, Weighted: true})
			require.NoError(t, err)
			out := output(t, 1)

			want := evalLoss(t, plain, out, o, in, tg, nil)
			got := evalLoss(t, weighted, out, o, in, tg, tensor.Full(tensor.Shape{4}, c))
			assert.InDelta(t, want, got, 1e-12, "%s with weight %v", name, c)
		}
	}
}

func TestForward_GradientWithRespectToOutput(t *testing.T) {
	l, err := loss.NewMeanSquaredError(loss.Options{InDim: 1, OutDim: 1})
	require.NoError(t, err)
	out := output(t, 1)
	feeds, err := loss.Bind(l, vec(0, 0), vec(1, -1), nil)
	require.NoError(t, err)
	feeds[out] = vec(2, 2)

	grads, err := graph.Gradients(l.Forward(out), feeds, out, l.Target())
	require.NoError(t, err)
	// d/do mean((o-t)²) = 2(o-t)/n
	assert.InDeltaSlice(t, []float64{1, 3}, grads[0].Float64s(), 1e-12)
	assert.InDeltaSlice(t, []float64{-1, -3}, grads[1].Float64s(), 1e-12)
}

func TestForward_RankMismatchPanics(t *testing.T) {
	l, err := loss.NewMeanSquaredError(loss.Options{InDim: 2, OutDim: 2})
	require.NoError(t, err)
	assert.Panics(t, func() { l.Forward(output(t, 1)) })
}

func TestForward_EmptyBatchIsNaN(t *testing.T) {
	l, err := loss.NewMeanSquaredError(loss.Options{InDim: 1, OutDim: 1})
	require.NoError(t, err)
	out := output(t, 1)
	got := evalLoss(t, l, out, vec(), vec(), vec(), nil)
	assert.True(t, math.IsNaN(got))
}
