package ops

import "math"

// TanhOp represents the hyperbolic tangent activation: tanh(x) = (e^{2x} - 1) / (e^{2x} + 1).
type TanhOp struct {
	output float64
}

// NewTanhOp creates a new tanh operation.
func NewTanhOp(x float64) *TanhOp {
	return &TanhOp{output: tanh(x)}
}

// tanh evaluates (e^{2x} - 1) / (e^{2x} + 1). Large |x| overflows e^{2x}
// to +Inf, so saturated inputs are answered by math.Tanh.
func tanh(x float64) float64 {
	e := math.Exp(2 * x)
	if math.IsInf(e, 0) {
		return math.Tanh(x)
	}
	return (e - 1) / (e + 1)
}

// Kind returns KindTanh.
func (op *TanhOp) Kind() Kind {
	return KindTanh
}

// Forward returns tanh(x).
func (op *TanhOp) Forward() float64 {
	return op.output
}

// Backward computes the gradient for tanh.
//
// For tanh(x):
// d(tanh(x))/dx = 1 - tanh²(x)
//
// Since we have the output tanh(x) already computed:
// grad_input = grad_output * (1 - output²).
func (op *TanhOp) Backward(outputGrad float64) []float64 {
	return []float64{(1 - op.output*op.output) * outputGrad}
}
