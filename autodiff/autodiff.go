// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides scalar reverse-mode automatic differentiation.
//
// Arithmetic on *Value builds a directed acyclic graph eagerly. Backward
// walks that graph once, in reverse topological order, and accumulates
// d(root)/d(node) into every reachable node.
//
// Example:
//
//	import "github.com/born-ml/micrograd/autodiff"
//
//	func main() {
//	    a := autodiff.NewLabeled(2, "a")
//	    b := autodiff.NewLabeled(-3, "b")
//	    c := autodiff.NewLabeled(10, "c")
//
//	    e := a.Mul(b)
//	    d := e.Add(c)
//	    f := autodiff.NewLabeled(-2, "f")
//	    L := d.Mul(f)
//
//	    L.Backward()
//	    fmt.Println(a.Grad()) // 6
//	}
//
// Gradients accumulate across Backward calls. Reset them with
// ResetGradients (or a Tape's ZeroGrad) before backpropagating again.
package autodiff

import (
	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/autodiff/ops"
)

// Value is a node of the computation graph.
type Value = autodiff.Value

// Kind identifies the operation that produced a value.
type Kind = ops.Kind

// Operation kinds.
const (
	KindLeaf = ops.KindLeaf
	KindAdd  = ops.KindAdd
	KindMul  = ops.KindMul
	KindPow  = ops.KindPow
	KindExp  = ops.KindExp
	KindTanh = ops.KindTanh
	KindReLU = ops.KindReLU
	KindLog  = ops.KindLog
)

// NewValue creates a leaf value.
func NewValue(data float64) *Value {
	return autodiff.NewValue(data)
}

// NewLabeled creates a leaf value with a debug label.
func NewLabeled(data float64, label string) *Value {
	return autodiff.NewLabeled(data, label)
}

// Number is the set of raw numeric types accepted where a constant is expected.
type Number = autodiff.Number

// Operand is a *Value or a raw number; raw numbers are promoted to leaves.
type Operand = autodiff.Operand

// Add returns a + b.
func Add[A, B Operand](a A, b B) *Value {
	return autodiff.Add(a, b)
}

// Mul returns a * b.
func Mul[A, B Operand](a A, b B) *Value {
	return autodiff.Mul(a, b)
}

// Sub returns a - b.
func Sub[A, B Operand](a A, b B) *Value {
	return autodiff.Sub(a, b)
}

// Div returns a / b. Division by zero follows IEEE 754.
func Div[A, B Operand](a A, b B) *Value {
	return autodiff.Div(a, b)
}

// Pow returns x raised to the constant p.
func Pow[A Operand, P Number](x A, p P) *Value {
	return autodiff.Pow(x, p)
}

// Sum adds values to start, left to right.
func Sum(start *Value, values ...*Value) *Value {
	return autodiff.Sum(start, values...)
}

// Apply builds the operation named op from untyped operands.
//
// Example:
//
//	y, err := autodiff.Apply("pow", x, 2)
//	if errors.Is(err, autodiff.ErrInvalidOperand) { ... }
func Apply(op string, operands ...any) (*Value, error) {
	return autodiff.Apply(op, operands...)
}

// Tape is the topological order of the graph reachable from a root.
type Tape = autodiff.Tape

// NewTape records the graph reachable from root.
func NewTape(root *Value) *Tape {
	return autodiff.NewTape(root)
}

// Backward seeds root's gradient with 1 and backpropagates through the graph.
func Backward(root *Value) {
	autodiff.Backward(root)
}

// ResetGradients sets the gradient of every given value to zero.
func ResetGradients(values ...*Value) {
	autodiff.ResetGradients(values...)
}

// Errors.
var (
	// ErrInvalidOperand is matched by every operand validation failure.
	ErrInvalidOperand = autodiff.ErrInvalidOperand

	// ErrNotLeaf is returned by Value.Update on derived values.
	ErrNotLeaf = autodiff.ErrNotLeaf
)

// OperandError describes a rejected operand.
type OperandError = autodiff.OperandError
