package autodiff

// Backward computes d root / d v for every value v reachable from root and
// adds it to v's gradient.
//
// Gradients accumulate: calling Backward again without resetting adds a second
// contribution to every non-root value. Reset with ResetGradients or
// Tape.ZeroGrad first when fresh gradients are needed.
//
// Example:
//
//	x := autodiff.NewValue(3.0)
//	a := x.Mul(x)
//	b := a.Add(a) // b = 2x²
//	autodiff.Backward(b)
//	grad := x.Grad() // 4x = 12.0
func Backward(root *Value) {
	NewTape(root).Backward()
}

// Backward computes gradients of v with respect to every value it depends on.
// See the package-level Backward.
func (v *Value) Backward() {
	Backward(v)
}

// ResetGradients sets the gradient of each given value to zero.
// Only the listed values are touched; their operands are not visited.
func ResetGradients(values ...*Value) {
	for _, v := range values {
		v.grad = 0
	}
}
