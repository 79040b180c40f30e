package checkpoint

import (
	"time"

	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// Version is the micrograd version recorded in new checkpoints.
const Version = "0.1.0"

// Checkpoint is a decoded checkpoint file.
type Checkpoint struct {
	Header Header
	Values []float64 // parameter data, in Header.Parameters order
}

// New snapshots the data of params. Parameter labels become names.
func New(params []*autodiff.Value) *Checkpoint {
	c := &Checkpoint{
		Header: Header{
			FormatVersion:    FormatVersion,
			MicrogradVersion: Version,
			CreatedAt:        time.Now().UTC(),
			Parameters:       make([]ParameterMeta, len(params)),
		},
		Values: make([]float64, len(params)),
	}
	for i, p := range params {
		c.Header.Parameters[i] = ParameterMeta{Name: p.Label(), Offset: int64(i) * ValueSize}
		c.Values[i] = p.Data()
	}
	return c
}

// Restore writes the saved data into params.
//
// params must have the same length and names as the saved parameters.
// Nothing is written unless every parameter matches and is a leaf.
func (c *Checkpoint) Restore(params []*autodiff.Value) error {
	if len(params) != len(c.Values) {
		return errors.Wrapf(ErrParameterMismatch, "model has %d parameters, checkpoint has %d", len(params), len(c.Values))
	}
	if len(c.Header.Parameters) != len(c.Values) {
		return errors.Wrapf(ErrParameterMismatch, "checkpoint has %d values but %d parameter entries", len(c.Values), len(c.Header.Parameters))
	}
	for i, p := range params {
		if name := c.Header.Parameters[i].Name; p.Label() != name {
			return errors.Wrapf(ErrParameterMismatch, "parameter %d: model has %q, checkpoint has %q", i, p.Label(), name)
		}
		if !p.IsLeaf() {
			return errors.Wrapf(autodiff.ErrNotLeaf, "parameter %q", p.Label())
		}
	}
	for i, p := range params {
		_ = p.Update(c.Values[i])
	}
	return nil
}
