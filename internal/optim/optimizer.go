// Package optim implements optimization algorithms for training networks built from autodiff values.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Parameters are leaf values; optimizers read their gradients and write new
// data through autodiff.Value.Update.
//
// Example usage:
//
//	model := nn.NewMLP(3, []int{4, 4, 1})
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.05})
//
//	for epoch := range epochs {
//	    loss := computeLoss(model, data)
//
//	    optimizer.ZeroGrad()
//	    loss.Backward()
//	    if err := optimizer.Step(); err != nil {
//	        return err
//	    }
//	}
package optim

import (
	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply gradient updates to parameters
//   - ZeroGrad: Clear gradients before next iteration
//   - GetLR: Get current learning rate (for monitoring/scheduling)
type Optimizer interface {
	// Step applies gradient updates to all parameters.
	//
	// Reads the gradient accumulated in each parameter by Backward.
	// Returns an error if a parameter is not a leaf; no parameter is
	// updated in that case.
	Step() error

	// ZeroGrad clears all parameter gradients.
	//
	// This should be called before each backward pass to prevent
	// gradient accumulation from previous iterations.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64
}

// Stateful is implemented by optimizers whose internal state can be saved
// and restored, e.g. in a checkpoint.
type Stateful interface {
	StateDict() map[string]float64
	LoadStateDict(stateDict map[string]float64) error
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}

// checkLeaves verifies every parameter can be updated.
func checkLeaves(params []*autodiff.Value) error {
	for i, p := range params {
		if !p.IsLeaf() {
			return errors.Wrapf(autodiff.ErrNotLeaf, "parameter %d (%s)", i, p)
		}
	}
	return nil
}

// zeroGrad resets the gradients of params.
func zeroGrad(params []*autodiff.Value) {
	autodiff.ResetGradients(params...)
}
