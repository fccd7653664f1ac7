package main

import (
	"io"
	"math"
	"os"

	"github.com/born-ml/lossgraph/internal/loss"
	"github.com/born-ml/lossgraph/internal/tensor"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Job describes one loss evaluation: which loss to build and the data to
// feed it.
//
//	loss: xe
//	in_dim: 2
//	out_dim: 1
//	output: {shape: [2, 3], data: [0.7, 0.2, 0.1, 0.1, 0.1, 0.8]}
//	target: {shape: [2], data: [0, 2]}
type Job struct {
	Loss         string `yaml:"loss"`
	loss.Options `yaml:",inline"`

	Output *Array `yaml:"output"`
	Input  *Array `yaml:"input"`
	Target *Array `yaml:"target"`
	Weight *Array `yaml:"weight"`
}

// Array is a shaped list of numbers in a job file.
type Array struct {
	Shape []int     `yaml:"shape"`
	Data  []float64 `yaml:"data"`
}

var errInvalidJob = errors.New("invalid job")

// LoadJob reads and validates a job file. "-" reads stdin.
func LoadJob(path string) (*Job, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "opening job file")
		}
		defer f.Close()
		r = f
	}
	return DecodeJob(r)
}

// DecodeJob parses a job from YAML. Unknown fields are rejected.
func DecodeJob(r io.Reader) (*Job, error) {
	var job Job
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&job); err != nil {
		return nil, errors.Wrap(err, "decoding job")
	}
	if job.Loss == "" {
		return nil, errors.Wrap(errInvalidJob, "missing loss name")
	}
	if job.Output == nil {
		return nil, errors.Wrap(errInvalidJob, "missing output")
	}
	return &job, nil
}

// arrays returns the job's data blocks keyed by loss placeholder name.
func (j *Job) arrays() map[string]*Array {
	return map[string]*Array{
		loss.InputName:  j.Input,
		loss.TargetName: j.Target,
		loss.WeightName: j.Weight,
	}
}

// Value converts the array to a value of the requested type. Int64
// conversion requires every element to be integral.
func (a *Array) Value(dtype tensor.DataType) (*tensor.Value, error) {
	shape := tensor.Shape(a.Shape)
	switch dtype {
	case tensor.Float64:
		return tensor.FromFloat64(append([]float64(nil), a.Data...), shape)
	case tensor.Int64:
		ints := make([]int64, len(a.Data))
		for i, x := range a.Data {
			if x != math.Trunc(x) {
				return nil, errors.Wrapf(errInvalidJob, "element %d (%v) is not an integer", i, x)
			}
			ints[i] = int64(x)
		}
		return tensor.FromInt64(ints, shape)
	}
	return nil, errors.Wrapf(tensor.ErrDType, "%v", dtype)
}
