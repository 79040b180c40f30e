package ops

// ReLUOp represents a ReLU (Rectified Linear Unit) activation: output = max(0, x).
//
// Backward pass:
//   - d(ReLU(x))/dx = 1 if x > 0, else 0
type ReLUOp struct {
	x float64
}

// NewReLUOp creates a new ReLUOp.
func NewReLUOp(x float64) *ReLUOp {
	return &ReLUOp{x: x}
}

// Kind returns KindReLU.
func (op *ReLUOp) Kind() Kind {
	return KindReLU
}

// Forward returns max(0, x).
func (op *ReLUOp) Forward() float64 {
	if op.x > 0 {
		return op.x
	}
	return 0
}

// Backward computes the operand gradient for ReLU.
func (op *ReLUOp) Backward(outputGrad float64) []float64 {
	if op.x > 0 {
		return []float64{outputGrad}
	}
	return []float64{0}
}
