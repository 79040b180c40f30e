// Package autodiff implements reverse-mode automatic differentiation over scalars.
//
// Every arithmetic operation on a Value allocates a new Value that records its
// operands and the local gradient rule of the operation (see package ops). There
// is no separate graph object: the graph is whatever is reachable from a Value
// through its operands.
//
// Architecture:
//   - Value: scalar data, accumulated gradient, operands, and the producing operation
//   - Tape: topological order of the graph reachable from a root
//   - Operation interface: each op (Add, Mul, Pow, Tanh, ...) implements its backward rule
//   - Reverse-mode AD: one reverse walk over the tape applies the chain rule
//
// Usage:
//
//	a := autodiff.NewValue(2.0)
//	b := autodiff.NewValue(-3.0)
//	y := a.Mul(b)
//
//	y.Backward()
//	fmt.Println(a.Grad()) // dy/da = b = -3.0
//
// Gradients accumulate across Backward calls. Reset them with ResetGradients
// (or Tape.ZeroGrad) before computing fresh ones.
package autodiff

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/autodiff/ops"
)

// Value is a node in the computation graph.
//
// data, operands and op never change once a derived Value is built. grad is
// written by the backward pass and by gradient resets only.
type Value struct {
	data     float64
	grad     float64
	operands []*Value      // Inputs this value was computed from, in argument order
	op       ops.Operation // Producing operation, nil for a leaf
	label    string        // Debug annotation
}

// NewValue creates a leaf value.
func NewValue(data float64) *Value {
	return &Value{data: data}
}

// NewLabeled creates a leaf value with a debug label.
func NewLabeled(data float64, label string) *Value {
	return &Value{data: data, label: label}
}

// newResult builds the output node of op over the given operands.
func newResult(op ops.Operation, operands ...*Value) *Value {
	return &Value{
		data:     op.Forward(),
		operands: operands,
		op:       op,
	}
}

// Data returns the scalar value.
func (v *Value) Data() float64 {
	return v.data
}

// Grad returns the accumulated gradient of the last backward root with respect to v.
func (v *Value) Grad() float64 {
	return v.grad
}

// Operands returns the values v was computed from.
func (v *Value) Operands() []*Value {
	return v.operands
}

// Kind returns the tag of the operation that produced v.
func (v *Value) Kind() ops.Kind {
	if v.op == nil {
		return ops.KindLeaf
	}
	return v.op.Kind()
}

// IsLeaf reports whether v was created directly from a number.
func (v *Value) IsLeaf() bool {
	return v.op == nil
}

// Label returns the debug label.
func (v *Value) Label() string {
	return v.label
}

// SetLabel sets the debug label and returns v for chaining.
func (v *Value) SetLabel(label string) *Value {
	v.label = label
	return v
}

// Update replaces the data of a leaf. Optimizers use it to apply parameter steps.
//
// Derived values are fixed by their operands, so Update on them returns
// ErrNotLeaf and leaves v untouched.
func (v *Value) Update(data float64) error {
	if !v.IsLeaf() {
		return errors.Wrapf(ErrNotLeaf, "update %s", v)
	}
	v.data = data
	return nil
}

// String returns a debug representation.
func (v *Value) String() string {
	return fmt.Sprintf("Value(data=%g, op=%s)", v.data, v.Kind())
}

// Add returns v + other.
func (v *Value) Add(other *Value) *Value {
	checkOperands("add", v, other)
	return newResult(ops.NewAddOp(v.data, other.data), v, other)
}

// Mul returns v * other.
func (v *Value) Mul(other *Value) *Value {
	checkOperands("mul", v, other)
	return newResult(ops.NewMulOp(v.data, other.data), v, other)
}

// Pow returns v^p. The exponent is a constant; no gradient flows to it.
func (v *Value) Pow(p float64) *Value {
	checkOperands("pow", v)
	return newResult(ops.NewPowOp(v.data, p), v)
}

// Neg returns -v, built as v * -1.
func (v *Value) Neg() *Value {
	checkOperands("neg", v)
	return v.Mul(NewValue(-1))
}

// Sub returns v - other, built as v + (-other).
func (v *Value) Sub(other *Value) *Value {
	checkOperands("sub", v, other)
	return v.Add(other.Neg())
}

// Div returns v / other, built as v * other^-1.
// Division by zero yields IEEE infinities or NaN, not an error.
func (v *Value) Div(other *Value) *Value {
	checkOperands("div", v, other)
	return v.Mul(other.Pow(-1))
}

// Exp returns e^v.
func (v *Value) Exp() *Value {
	checkOperands("exp", v)
	return newResult(ops.NewExpOp(v.data), v)
}

// Tanh returns tanh(v).
func (v *Value) Tanh() *Value {
	checkOperands("tanh", v)
	return newResult(ops.NewTanhOp(v.data), v)
}

// ReLU returns max(0, v).
func (v *Value) ReLU() *Value {
	checkOperands("relu", v)
	return newResult(ops.NewReLUOp(v.data), v)
}

// Log returns ln(v).
func (v *Value) Log() *Value {
	checkOperands("log", v)
	return newResult(ops.NewLogOp(v.data), v)
}

// checkOperands panics when an operand is nil, naming the operation and position.
func checkOperands(op string, operands ...*Value) {
	for i, operand := range operands {
		if operand == nil {
			panic(fmt.Sprintf("autodiff: nil operand %d to %s", i, op))
		}
	}
}

// propagate applies v's local gradient rule, adding contributions to its operands.
func (v *Value) propagate() {
	if v.op == nil {
		return
	}
	grads := v.op.Backward(v.grad)
	for i, operand := range v.operands {
		operand.grad += grads[i]
	}
}
