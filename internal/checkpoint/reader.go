package checkpoint

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
)

// Read decodes a checkpoint from r, verifying the data checksum.
func Read(r io.Reader) (*Checkpoint, error) {
	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, errors.Wrap(err, "failed to read fixed header")
	}
	if string(fixed[0:4]) != MagicBytes {
		return nil, ErrInvalidMagic
	}
	if version := binary.LittleEndian.Uint32(fixed[4:8]); version != FormatVersion {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "got %d, expected %d", version, FormatVersion)
	}

	headerSize := binary.LittleEndian.Uint64(fixed[16:24])
	dataSize := binary.LittleEndian.Uint64(fixed[24:32])
	if headerSize > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}
	if dataSize > MaxParameterCount*ValueSize {
		return nil, &ValidationError{Type: "data_size", Details: "data section exceeds maximum parameter count"}
	}
	var stored [32]byte
	copy(stored[:], fixed[ChecksumOffset:ChecksumOffset+ChecksumSize])

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}
	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, errors.Wrap(err, "failed to parse header JSON")
	}

	data := make([]byte, dataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.Wrap(err, "failed to read parameter data")
	}
	if err := ValidateChecksum(ComputeChecksum(data), stored); err != nil {
		return nil, err
	}
	//nolint:gosec // G115: dataSize is bounded above
	if err := ValidateHeader(&header, int64(dataSize)); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}

	values := make([]float64, len(header.Parameters))
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*ValueSize:]))
	}
	return &Checkpoint{Header: header, Values: values}, nil
}

// Load reads the checkpoint file at path.
func Load(path string) (*Checkpoint, error) {
	//nolint:gosec // G304: path comes from the user
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer func() { _ = f.Close() }()

	c, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "checkpoint %s", path)
	}
	return c, nil
}
