package ops

import "math"

// PowOp represents raising to a constant power: output = x^p.
//
// The exponent is a plain number, not a graph value, so no gradient
// flows to it.
//
// Backward pass:
//   - d(x^p)/dx = p * x^(p-1), so grad_x = outputGrad * p * x^(p-1)
type PowOp struct {
	x float64
	p float64
}

// NewPowOp creates a new PowOp.
func NewPowOp(x, p float64) *PowOp {
	return &PowOp{x: x, p: p}
}

// Kind returns KindPow.
func (op *PowOp) Kind() Kind {
	return KindPow
}

// Exponent returns the constant exponent p.
func (op *PowOp) Exponent() float64 {
	return op.p
}

// Forward returns x^p.
func (op *PowOp) Forward() float64 {
	return math.Pow(op.x, op.p)
}

// Backward computes the operand gradient for the power rule.
func (op *PowOp) Backward(outputGrad float64) []float64 {
	return []float64{op.p * math.Pow(op.x, op.p-1) * outputGrad}
}
