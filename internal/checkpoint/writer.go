package checkpoint

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
)

// Write encodes c to w.
func Write(w io.Writer, c *Checkpoint) error {
	if len(c.Header.Parameters) != len(c.Values) {
		return errors.Errorf("checkpoint has %d parameter names and %d values", len(c.Header.Parameters), len(c.Values))
	}

	header := c.Header
	header.FormatVersion = FormatVersion
	header.Parameters = append([]ParameterMeta(nil), c.Header.Parameters...)
	for i := range header.Parameters {
		header.Parameters[i].Offset = int64(i) * ValueSize
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "failed to marshal header")
	}

	data := make([]byte, len(c.Values)*ValueSize)
	for i, v := range c.Values {
		binary.LittleEndian.PutUint64(data[i*ValueSize:], math.Float64bits(v))
	}

	var flags uint32
	if header.Checkpoint != nil {
		flags |= FlagHasTrainingState
	}
	if len(header.Metadata) > 0 {
		flags |= FlagHasMetadata
	}

	fixed := make([]byte, FixedHeaderSize)
	copy(fixed[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixed[4:8], FormatVersion)
	binary.LittleEndian.PutUint32(fixed[8:12], flags)
	binary.LittleEndian.PutUint64(fixed[16:24], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixed[24:32], uint64(len(data)))
	checksum := ComputeChecksum(data)
	copy(fixed[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	var buf bytes.Buffer
	buf.Grow(len(fixed) + len(headerJSON) + len(data))
	buf.Write(fixed)
	buf.Write(headerJSON)
	buf.Write(data)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write checkpoint")
	}
	return nil
}

// Save writes c to the file at path, replacing it if it exists.
func Save(path string, c *Checkpoint) error {
	//nolint:gosec // G304: path comes from the user
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	if err := Write(f, c); err != nil {
		_ = f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "failed to close file")
}
