package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeJob(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "lossgraph "+version+"\n", out)
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Equal(t, "CrossEntropy (XE)\nHinge\nMeanAbsoluteError (MAE)\nMeanSquaredError (MSE)\n", out)
}

func TestEval_CrossEntropy(t *testing.T) {
	out, err := run(t, "eval", "-f", writeJob(t, xeJob))
	require.NoError(t, err)
	// -(log 0.7 + log 0.8) / 2
	assert.Contains(t, out, "loss: 0.289909\n")
	assert.Contains(t, out, "accuracy: 1\n")
}

func TestEval_MSEWithGradient(t *testing.T) {
	job := `
loss: MSE
in_dim: 1
out_dim: 1
output: {shape: [2], data: [2, 2]}
input: {shape: [2], data: [0, 0]}
target: {shape: [2], data: [1, -1]}
`
	out, err := run(t, "eval", "--grad", "-f", writeJob(t, job))
	require.NoError(t, err)
	assert.Equal(t, "loss: 5\ngrad: shape (2)\n  [1 3]\n", out)
}

func TestEval_Autoencoder(t *testing.T) {
	job := `
loss: mae
in_dim: 1
output: {shape: [2], data: [1, 1]}
input: {shape: [2], data: [0, 3]}
`
	out, err := run(t, "eval", "-f", writeJob(t, job))
	require.NoError(t, err)
	assert.Equal(t, "loss: 1.5\n", out)
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name string
		job  string
	}{
		{"unknown loss", "loss: nope\noutput: {shape: [1], data: [1]}\n"},
		{"target without out_dim", "loss: mse\nin_dim: 1\noutput: {shape: [1], data: [1]}\ntarget: {shape: [1], data: [1]}\n"},
		{"missing input", "loss: mse\nin_dim: 1\noutput: {shape: [1], data: [1]}\n"},
		{"bad class index", "loss: xe\nin_dim: 1\nout_dim: 0\noutput: {shape: [2], data: [0.5, 0.5]}\ntarget: {shape: [], data: [4]}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "eval", "-f", writeJob(t, tt.job))
			assert.Error(t, err)
		})
	}
}
