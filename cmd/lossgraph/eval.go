package main

import (
	"fmt"
	"io"

	"github.com/born-ml/lossgraph/internal/graph"
	"github.com/born-ml/lossgraph/internal/loss"
	"github.com/born-ml/lossgraph/internal/tensor"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type evalOptions struct {
	file    string
	grad    bool
	verbose bool
}

func newEvalCmd() *cobra.Command {
	opts := &evalOptions{}
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a loss described by a YAML job file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			job, err := LoadJob(opts.file)
			if err != nil {
				return err
			}
			return runEval(cmd, job, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "-", "job file (- for stdin)")
	cmd.Flags().BoolVar(&opts.grad, "grad", false, "also print the gradient with respect to the output")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func runEval(cmd *cobra.Command, job *Job, opts *evalOptions) error {
	logger := newLogger(cmd, opts.verbose)

	l, err := loss.Build(job.Loss, job.Options)
	if err != nil {
		return err
	}
	logger.Debug("built loss", "name", job.Loss, "in_dim", job.InDim, "out_dim", job.OutDim, "weighted", job.Weighted)

	outData, err := job.Output.Value(tensor.Float64)
	if err != nil {
		return errors.Wrap(err, "output")
	}
	output, err := graph.NewPlaceholder("output", outData.Rank(), tensor.Float64)
	if err != nil {
		return err
	}

	feeds, err := jobFeeds(l, job)
	if err != nil {
		return err
	}
	feeds[output] = outData
	for n, v := range feeds {
		logger.Debug("feed", "placeholder", n.Name(), "value", v.String())
	}

	w := cmd.OutOrStdout()
	expr := l.Forward(output)
	value, err := graph.Evaluate(expr, feeds)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "loss: %.6g\n", value.Float64s()[0])

	if xe, ok := l.(*loss.CrossEntropy); ok {
		acc, err := loss.EvaluateAccuracy(xe, output, feeds)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "accuracy: %.6g\n", acc)
	}

	if opts.grad {
		grads, err := graph.Gradients(expr, feeds, output)
		if err != nil {
			return err
		}
		printValue(w, "grad", grads[0])
	}
	return nil
}

// jobFeeds binds the job's arrays to the loss placeholders. Arrays for
// placeholders the loss does not have are rejected; missing arrays are
// left for the evaluator to report if the expression needs them.
func jobFeeds(l loss.Loss, job *Job) (graph.Feeds, error) {
	feeds := graph.Feeds{}
	vars := map[string]*graph.Node{}
	for _, v := range l.Variables() {
		vars[v.Name()] = v
	}
	for name, arr := range job.arrays() {
		if arr == nil {
			continue
		}
		node, ok := vars[name]
		if !ok {
			return nil, errors.Wrapf(loss.ErrUnexpectedData, "%s", name)
		}
		v, err := arr.Value(node.DType())
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		feeds[node] = v
	}
	return feeds, nil
}

func printValue(w io.Writer, label string, v *tensor.Value) {
	fmt.Fprintf(w, "%s: shape %v\n", label, v.Shape())
	data := v.Float64s()
	row := v.Shape().Last()
	if row == 0 {
		row = 1
	}
	for i := 0; i < len(data); i += row {
		end := min(i+row, len(data))
		fmt.Fprintf(w, "  %.6g\n", data[i:end])
	}
}
