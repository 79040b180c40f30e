package ops

// AddOp represents addition: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
type AddOp struct {
	a, b float64
}

// NewAddOp creates a new AddOp.
func NewAddOp(a, b float64) *AddOp {
	return &AddOp{a: a, b: b}
}

// Kind returns KindAdd.
func (op *AddOp) Kind() Kind {
	return KindAdd
}

// Forward returns a + b.
func (op *AddOp) Forward() float64 {
	return op.a + op.b
}

// Backward computes operand gradients for addition.
// Since d(a+b)/da = d(a+b)/db = 1, the gradient flows equally to both operands.
func (op *AddOp) Backward(outputGrad float64) []float64 {
	return []float64{outputGrad, outputGrad}
}
