package autodiff

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/autodiff/ops"
)

// Number is a raw numeric constant.
type Number interface {
	float64 | float32 | int | int64
}

// Operand is anything an operation accepts: a graph value or a raw number,
// which is promoted to a fresh leaf.
type Operand interface {
	*Value | float64 | float32 | int | int64
}

// lift returns x as a graph value, promoting numbers to leaves.
func lift[T Operand](x T) *Value {
	switch v := any(x).(type) {
	case *Value:
		if v == nil {
			panic("autodiff: nil operand")
		}
		return v
	case float64:
		return NewValue(v)
	case float32:
		return NewValue(float64(v))
	case int:
		return NewValue(float64(v))
	case int64:
		return NewValue(float64(v))
	}
	panic(fmt.Sprintf("autodiff: unsupported operand type %T", x))
}

// Add returns a + b.
func Add[A, B Operand](a A, b B) *Value {
	return lift(a).Add(lift(b))
}

// Mul returns a * b.
func Mul[A, B Operand](a A, b B) *Value {
	return lift(a).Mul(lift(b))
}

// Sub returns a - b.
func Sub[A, B Operand](a A, b B) *Value {
	return lift(a).Sub(lift(b))
}

// Div returns a / b.
func Div[A, B Operand](a A, b B) *Value {
	return lift(a).Div(lift(b))
}

// Pow returns x^p. The exponent type only admits numbers, so a graph value
// cannot be passed as an exponent.
func Pow[A Operand, P Number](x A, p P) *Value {
	return lift(x).Pow(float64(p))
}

// Sum adds start and every value, left to right.
// It mirrors a fold with start as the initial accumulator.
func Sum(start *Value, values ...*Value) *Value {
	acc := start
	for _, v := range values {
		acc = acc.Add(v)
	}
	return acc
}

// arity of every operation accepted by Apply.
var applyArity = map[string]int{
	"add":  2,
	"sub":  2,
	"mul":  2,
	"div":  2,
	"pow":  2,
	"neg":  1,
	"exp":  1,
	"tanh": 1,
	"relu": 1,
	"log":  1,
}

// Apply builds the named operation over dynamically typed operands.
//
// Operands may be *Value or any Go numeric type. The pow exponent must be a
// number; passing a *Value there is rejected. All operands are checked before
// anything is built, so a failed call leaves every existing value untouched.
// Errors match ErrInvalidOperand.
func Apply(op string, operands ...any) (*Value, error) {
	arity, ok := applyArity[op]
	if !ok {
		return nil, &OperandError{Op: op, Position: -1, Reason: "unknown operation"}
	}
	if len(operands) != arity {
		return nil, &OperandError{
			Op:       op,
			Position: -1,
			Reason:   fmt.Sprintf("expected %d operands, got %d", arity, len(operands)),
		}
	}

	if op == "pow" {
		x, err := asValue(op, 0, operands[0])
		if err != nil {
			return nil, err
		}
		p, isNumber := asNumber(operands[1])
		if !isNumber {
			return nil, &OperandError{
				Op:       op,
				Position: 1,
				Operand:  operands[1],
				Reason:   "exponent must be a numeric constant",
			}
		}
		return x.Pow(p), nil
	}

	values := make([]*Value, len(operands))
	for i, operand := range operands {
		v, err := asValue(op, i, operand)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	switch op {
	case "add":
		return values[0].Add(values[1]), nil
	case "sub":
		return values[0].Sub(values[1]), nil
	case "mul":
		return values[0].Mul(values[1]), nil
	case "div":
		return values[0].Div(values[1]), nil
	case "neg":
		return values[0].Neg(), nil
	case string(ops.KindExp):
		return values[0].Exp(), nil
	case string(ops.KindTanh):
		return values[0].Tanh(), nil
	case string(ops.KindReLU):
		return values[0].ReLU(), nil
	default:
		return values[0].Log(), nil
	}
}

// asValue converts an operand without allocating for *Value inputs.
func asValue(op string, pos int, operand any) (*Value, error) {
	if v, ok := operand.(*Value); ok {
		if v == nil {
			return nil, &OperandError{Op: op, Position: pos, Operand: operand, Reason: "nil value"}
		}
		return v, nil
	}
	if f, ok := asNumber(operand); ok {
		return NewValue(f), nil
	}
	return nil, &OperandError{Op: op, Position: pos, Operand: operand, Reason: "not a value or number"}
}

// asNumber reports whether operand is a Go numeric type and returns it as float64.
func asNumber(operand any) (float64, bool) {
	switch n := operand.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
