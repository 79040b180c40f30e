package ops

import "math"

// ExpOp represents the exponential operation: y = exp(x).
//
// Backward pass:
//   - d(exp(x))/dx = exp(x) = y
//   - grad_input = grad_output * output
type ExpOp struct {
	output float64 // exp(x)
}

// NewExpOp creates a new ExpOp.
func NewExpOp(x float64) *ExpOp {
	return &ExpOp{output: math.Exp(x)}
}

// Kind returns KindExp.
func (op *ExpOp) Kind() Kind {
	return KindExp
}

// Forward returns exp(x).
func (op *ExpOp) Forward() float64 {
	return op.output
}

// Backward computes the operand gradient for exp.
//
// Since d(exp(x))/dx = exp(x), and we already have exp(x) as output:
// grad_input = grad_output * output.
func (op *ExpOp) Backward(outputGrad float64) []float64 {
	return []float64{op.output * outputGrad}
}
