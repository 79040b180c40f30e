package ops

import "math"

// LogOp represents the natural logarithm.
//
// Forward:
//
//	output = log(x)
//
// Backward:
//
//	∂L/∂x = ∂L/∂output * (1 / x)
//
// Non-positive inputs follow IEEE semantics (NaN or -Inf).
type LogOp struct {
	x float64
}

// NewLogOp creates a new log operation.
func NewLogOp(x float64) *LogOp {
	return &LogOp{x: x}
}

// Kind returns KindLog.
func (op *LogOp) Kind() Kind {
	return KindLog
}

// Forward returns ln(x).
func (op *LogOp) Forward() float64 {
	return math.Log(op.x)
}

// Backward computes the gradient with respect to x.
func (op *LogOp) Backward(outputGrad float64) []float64 {
	return []float64{outputGrad / op.x}
}
