package checkpoint

import (
	"fmt"

	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrParameterMismatch  = errors.New("parameters do not match checkpoint")
)

// ValidationError provides detailed information about header validation failures.
type ValidationError struct {
	Type      string // e.g. "duplicate_name", "out_of_bounds"
	Parameter string // parameter involved, if any
	Details   string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Parameter != "" {
		return fmt.Sprintf("%s: parameter %q: %s", e.Type, e.Parameter, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}
