package checkpoint

import (
	"time"
)

// Format constants.
const (
	MagicBytes      = "MGRD"
	FormatVersion   = 1
	FixedHeaderSize = 64   // magic, version, flags, sizes and checksum
	ChecksumOffset  = 0x20 // checksum offset in the fixed header
	ChecksumSize    = 32   // SHA-256
	ValueSize       = 8    // float64
)

// Flags.
const (
	FlagHasTrainingState uint32 = 1 << 0
	FlagHasMetadata      uint32 = 1 << 1
)

// Header is the JSON header of a checkpoint file.
type Header struct {
	FormatVersion    int               `json:"format_version"`
	MicrogradVersion string            `json:"micrograd_version"`
	ModelType        string            `json:"model_type,omitempty"` // e.g. "MLP(3 -> 4 -> 4 -> 1)"
	CreatedAt        time.Time         `json:"created_at"`
	Parameters       []ParameterMeta   `json:"parameters"`
	Metadata         map[string]string `json:"metadata,omitempty"`
	Checkpoint       *TrainingState    `json:"checkpoint,omitempty"`
}

// ParameterMeta locates one parameter in the data section.
type ParameterMeta struct {
	Name   string `json:"name"`   // parameter label, e.g. "l0.n1.w2"
	Offset int64  `json:"offset"` // bytes from the start of the data section
}

// TrainingState is what a trainer needs to resume.
type TrainingState struct {
	Epoch          int                `json:"epoch"`
	Loss           float64            `json:"loss"`
	OptimizerType  string             `json:"optimizer_type"`
	LearningRate   float64            `json:"learning_rate"`
	OptimizerState map[string]float64 `json:"optimizer_state,omitempty"`
}
