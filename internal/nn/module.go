// Package nn implements neural network building blocks on top of scalar autodiff.
//
// This package provides:
//   - Module interface: Base interface for all NN components
//   - Neuron: weighted sum plus bias followed by an activation
//   - Layer: a row of independent neurons over the same inputs
//   - MLP: multi-layer perceptron chaining layers
//   - Loss functions: SSE, MSE
//
// Parameters are plain leaf values. Read their gradients after Backward,
// and reset them with ZeroGrad before the next one.
package nn

import (
	"github.com/born-ml/micrograd/internal/autodiff"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Compute outputs from inputs
//   - Parameters: Return all trainable parameters
//
// Modules can be composed to build larger networks:
//
//	model := nn.NewMLP(3, []int{4, 4, 1})
//	out := model.Forward(nn.Inputs(2, 3, -1))
type Module interface {
	// Forward builds the graph of the module's outputs for the given inputs.
	Forward(x []*autodiff.Value) []*autodiff.Value

	// Parameters returns all trainable parameters of this module,
	// including those of nested modules.
	Parameters() []*autodiff.Value
}

// ZeroGrad resets the gradients of all parameters of m.
//
// This should be called before each backward pass to avoid
// accumulating gradients from previous iterations.
func ZeroGrad(m Module) {
	autodiff.ResetGradients(m.Parameters()...)
}

// Inputs wraps raw numbers as leaf values.
func Inputs(xs ...float64) []*autodiff.Value {
	out := make([]*autodiff.Value, len(xs))
	for i, x := range xs {
		out[i] = autodiff.NewValue(x)
	}
	return out
}

// Datas returns the data of each value.
func Datas(values []*autodiff.Value) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v.Data()
	}
	return out
}
