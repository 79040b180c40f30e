package autodiff

import (
	"fmt"

	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrInvalidOperand = errors.New("invalid operand")
	ErrNotLeaf        = errors.New("value is not a leaf")
)

// OperandError describes an operand rejected while building a value.
// It matches ErrInvalidOperand with errors.Is.
type OperandError struct {
	Op       string // Operation being built (e.g., "pow")
	Position int    // Zero-based operand position
	Operand  any    // Offending operand
	Reason   string // Why it was rejected
}

// Error implements the error interface.
func (e *OperandError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("%s: %s: %s", ErrInvalidOperand, e.Op, e.Reason)
	}
	return fmt.Sprintf("%s: %s operand %d (%T): %s", ErrInvalidOperand, e.Op, e.Position, e.Operand, e.Reason)
}

// Unwrap returns ErrInvalidOperand.
func (e *OperandError) Unwrap() error {
	return ErrInvalidOperand
}
