// Package ops defines the local gradient rules for automatic differentiation.
//
// Each operation implements the Operation interface, which provides:
//   - Forward pass: the result, computed once when the operation is created
//   - Backward pass: the gradient contribution for each operand given the output gradient
//
// Supported operations:
//   - AddOp: addition (d(a+b)/da = 1, d(a+b)/db = 1)
//   - MulOp: multiplication (d(a*b)/da = b, d(a*b)/db = a)
//   - PowOp: power with a constant exponent (d(x^p)/dx = p * x^(p-1))
//   - ExpOp: exponential (d(e^x)/dx = e^x)
//   - TanhOp: hyperbolic tangent (d(tanh(x))/dx = 1 - tanh²(x))
//   - ReLUOp: rectified linear unit (d(ReLU(x))/dx = 1 if x > 0, else 0)
//   - LogOp: natural logarithm (d(ln(x))/dx = 1/x)
//
// Operations only compute contributions. Accumulating them into operand
// gradients is the caller's job.
package ops

// Operation represents a differentiable scalar operation in the computation graph.
// Each operation captures the operand values it needs during the forward pass,
// and computes operand gradient contributions during the backward pass.
type Operation interface {
	// Kind returns the operation tag.
	Kind() Kind

	// Forward returns the result of the operation.
	Forward() float64

	// Backward computes the contribution for each operand given the output gradient.
	// Returns a slice with one entry per operand, in operand order.
	//
	// Example for MulOp(a=2, b=-3):
	//   outputGrad: 1
	//   returns: [-3, 2]
	Backward(outputGrad float64) []float64
}
