package checkpoint

import (
	"fmt"
)

// Validation limits.
const (
	MaxHeaderSize     = 64 * 1024 * 1024
	MaxParameterCount = 1_000_000
	MaxNameLen        = 1024
)

// ValidateHeader checks parameter names and offsets against the data size.
func ValidateHeader(h *Header, dataSize int64) error {
	if len(h.Parameters) > MaxParameterCount {
		return &ValidationError{
			Type:    "too_many_parameters",
			Details: fmt.Sprintf("got %d, max %d", len(h.Parameters), MaxParameterCount),
		}
	}
	if want := int64(len(h.Parameters)) * ValueSize; dataSize != want {
		return &ValidationError{
			Type:    "data_size",
			Details: fmt.Sprintf("data section has %d bytes, %d parameters need %d", dataSize, len(h.Parameters), want),
		}
	}

	seen := make(map[string]bool, len(h.Parameters))
	for i, p := range h.Parameters {
		if len(p.Name) > MaxNameLen {
			return &ValidationError{
				Type:      "name_too_long",
				Parameter: p.Name[:32] + "...",
				Details:   fmt.Sprintf("length %d, max %d", len(p.Name), MaxNameLen),
			}
		}
		if p.Name != "" {
			if seen[p.Name] {
				return &ValidationError{Type: "duplicate_name", Parameter: p.Name, Details: "name used twice"}
			}
			seen[p.Name] = true
		}
		if p.Offset != int64(i)*ValueSize {
			return &ValidationError{
				Type:      "out_of_order",
				Parameter: p.Name,
				Details:   fmt.Sprintf("offset %d, expected %d", p.Offset, int64(i)*ValueSize),
			}
		}
	}
	return nil
}
