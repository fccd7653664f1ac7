package optim

import (
	"github.com/born-ml/lossgraph/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// SGD implements Stochastic Gradient Descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
type SGD struct {
	params     []*Parameter
	lr         float64
	momentum   float64
	velocities [][]float64
}

// SGDConfig holds configuration for SGD.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(params []*Parameter, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make([][]float64, len(params)),
	}
}

// Step applies one update. A nil gradient leaves its parameter unchanged.
func (s *SGD) Step(grads []*tensor.Value) error {
	if len(grads) != len(s.params) {
		return errors.Errorf("sgd: %d gradients for %d parameters", len(grads), len(s.params))
	}
	for i, p := range s.params {
		g := grads[i]
		if g == nil {
			continue
		}
		if !g.Shape().Equal(p.Value.Shape()) {
			return errors.Errorf("sgd: gradient %v does not match parameter %q %v", g.Shape(), p.Node.Name(), p.Value.Shape())
		}
		step := g.Float64s()
		if s.momentum != 0 {
			v := s.velocities[i]
			if v == nil {
				v = make([]float64, len(step))
				s.velocities[i] = v
			}
			floats.Scale(s.momentum, v)
			floats.Add(v, step)
			step = v
		}
		floats.AddScaled(p.Value.Float64s(), -s.lr, step)
	}
	return nil
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 { return s.lr }

// SetLR changes the learning rate.
func (s *SGD) SetLR(lr float64) { s.lr = lr }
