package optim

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.05,
//	    Momentum: 0.9,
//	})
type SGD struct {
	params     []*autodiff.Value
	lr         float64
	momentum   float64
	velocities map[*autodiff.Value]float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(params []*autodiff.Value, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*autodiff.Value]float64),
	}
}

// Step performs a single optimization step.
func (s *SGD) Step() error {
	if err := checkLeaves(s.params); err != nil {
		return errors.Wrap(err, "sgd")
	}

	for _, param := range s.params {
		update := param.Grad()
		if s.momentum != 0 {
			velocity := s.momentum*s.velocities[param] + update
			s.velocities[param] = velocity
			update = velocity
		}
		// Leaves were checked above.
		_ = param.Update(param.Data() - s.lr*update)
	}
	return nil
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad() {
	zeroGrad(s.params)
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// StateDict returns the optimizer state.
//
// For SGD with momentum, this exports velocity buffers for each parameter.
// Without momentum, returns an empty map.
//
// State keys: "velocity.{param_index}".
func (s *SGD) StateDict() map[string]float64 {
	stateDict := make(map[string]float64)
	if s.momentum == 0 {
		return stateDict
	}

	for i, param := range s.params {
		velocity, exists := s.velocities[param]
		if !exists {
			continue
		}
		stateDict[fmt.Sprintf("velocity.%d", i)] = velocity
	}
	return stateDict
}

// LoadStateDict restores velocity buffers saved by StateDict.
// Without momentum the state is ignored.
func (s *SGD) LoadStateDict(stateDict map[string]float64) error {
	if s.momentum == 0 {
		return nil
	}

	velocities := make(map[*autodiff.Value]float64)
	for key, velocity := range stateDict {
		var i int
		if _, err := fmt.Sscanf(key, "velocity.%d", &i); err != nil {
			return errors.Errorf("sgd: unexpected state key %q", key)
		}
		if i < 0 || i >= len(s.params) {
			return errors.Errorf("sgd: state key %q out of range for %d parameters", key, len(s.params))
		}
		velocities[s.params[i]] = velocity
	}
	s.velocities = velocities
	return nil
}
