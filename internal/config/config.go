// Package config loads training configuration from HCL files.
//
// A configuration file has up to three kinds of top-level blocks:
//
//	model {
//	  inputs            = 3
//	  layers            = [4, 4, 1]
//	  activation        = "tanh"
//	  output_activation = "tanh"
//	  seed              = 1337
//	}
//
//	train {
//	  epochs        = 100
//	  learning_rate = 0.05
//	  momentum      = 0.0
//	  optimizer     = "sgd"
//	  loss          = "sse"
//	  log_every     = 10
//	}
//
//	sample {
//	  x = [2.0, 3.0, -1.0]
//	  y = [1.0]
//	}
//
// Attribute values are HCL expressions; pi, e and functions such as pow,
// range and concat are in scope.
//
// Every block and attribute is optional. Omitted values keep the defaults of
// Default; any sample block replaces the default dataset as a whole.
package config

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/ctxlog"
	"github.com/born-ml/micrograd/internal/nn"
)

// ErrInvalidConfig is returned by Validate, wrapped with the offending field.
var ErrInvalidConfig = errors.New("invalid config")

// Optimizer names.
const (
	OptimizerSGD  = "sgd"
	OptimizerAdam = "adam"
)

// Loss names.
const (
	LossSSE = "sse"
	LossMSE = "mse"
)

// Config is a complete training run description.
type Config struct {
	Model   Model
	Train   Train
	Samples []Sample
}

// Model describes the network shape.
type Model struct {
	Inputs           int
	Layers           []int
	Activation       string
	OutputActivation string
	Seed             int64
}

// Train holds the optimization settings.
type Train struct {
	Epochs       int
	LearningRate float64
	Momentum     float64
	Optimizer    string
	Loss         string
	LogEvery     int
}

// Sample is one input vector with its expected outputs.
type Sample struct {
	X []float64
	Y []float64
}

// Default returns the four-sample binary classifier from the micrograd
// walkthrough: a 3 -> 4 -> 4 -> 1 tanh network trained with plain SGD.
func Default() *Config {
	return &Config{
		Model: Model{
			Inputs:           3,
			Layers:           []int{4, 4, 1},
			Activation:       "tanh",
			OutputActivation: "tanh",
			Seed:             1337,
		},
		Train: Train{
			Epochs:       100,
			LearningRate: 0.05,
			Optimizer:    OptimizerSGD,
			Loss:         LossSSE,
			LogEvery:     10,
		},
		Samples: []Sample{
			{X: []float64{2, 3, -1}, Y: []float64{1}},
			{X: []float64{3, -1, 0.5}, Y: []float64{-1}},
			{X: []float64{0.5, 1, 1}, Y: []float64{-1}},
			{X: []float64{1, 1, -1}, Y: []float64{1}},
		},
	}
}

// hclFile mirrors the file layout for decoding. Attributes are pointers so
// that an omitted attribute can be told apart from a zero value.
type hclFile struct {
	Model   *hclModel    `hcl:"model,block"`
	Train   *hclTrain    `hcl:"train,block"`
	Samples []*hclSample `hcl:"sample,block"`
}

type hclModel struct {
	Inputs           *int    `hcl:"inputs,optional"`
	Layers           []int   `hcl:"layers,optional"`
	Activation       *string `hcl:"activation,optional"`
	OutputActivation *string `hcl:"output_activation,optional"`
	Seed             *int64  `hcl:"seed,optional"`
}

type hclTrain struct {
	Epochs       *int     `hcl:"epochs,optional"`
	LearningRate *float64 `hcl:"learning_rate,optional"`
	Momentum     *float64 `hcl:"momentum,optional"`
	Optimizer    *string  `hcl:"optimizer,optional"`
	Loss         *string  `hcl:"loss,optional"`
	LogEvery     *int     `hcl:"log_every,optional"`
}

type hclSample struct {
	X []float64 `hcl:"x"`
	Y []float64 `hcl:"y"`
}

// Load reads and validates the configuration file at path.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading config", "path", path)

	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to parse config file %s", path)
	}

	cfg, err := decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode config file %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config file %s", path)
	}

	logger.Debug("Config loaded", "path", path, "samples", len(cfg.Samples))
	return cfg, nil
}

// Parse decodes and validates configuration source. filename is only used in
// diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to parse %s", filename)
	}

	cfg, err := decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", filename)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", filename)
	}
	return cfg, nil
}

func decode(file *hcl.File) (*Config, error) {
	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &parsed); diags.HasErrors() {
		return nil, diags
	}

	cfg := Default()
	if m := parsed.Model; m != nil {
		setIfPresent(&cfg.Model.Inputs, m.Inputs)
		if m.Layers != nil {
			cfg.Model.Layers = m.Layers
		}
		setIfPresent(&cfg.Model.Activation, m.Activation)
		setIfPresent(&cfg.Model.OutputActivation, m.OutputActivation)
		setIfPresent(&cfg.Model.Seed, m.Seed)
	}
	if t := parsed.Train; t != nil {
		setIfPresent(&cfg.Train.Epochs, t.Epochs)
		setIfPresent(&cfg.Train.LearningRate, t.LearningRate)
		setIfPresent(&cfg.Train.Momentum, t.Momentum)
		setIfPresent(&cfg.Train.Optimizer, t.Optimizer)
		setIfPresent(&cfg.Train.Loss, t.Loss)
		setIfPresent(&cfg.Train.LogEvery, t.LogEvery)
	}
	if len(parsed.Samples) > 0 {
		cfg.Samples = make([]Sample, len(parsed.Samples))
		for i, s := range parsed.Samples {
			cfg.Samples[i] = Sample{X: s.X, Y: s.Y}
		}
	}
	return cfg, nil
}

func setIfPresent[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Validate checks that the configuration describes a trainable network.
func (c *Config) Validate() error {
	if c.Model.Inputs <= 0 {
		return invalid("model.inputs must be positive, got %d", c.Model.Inputs)
	}
	if len(c.Model.Layers) == 0 {
		return invalid("model.layers must not be empty")
	}
	for i, n := range c.Model.Layers {
		if n <= 0 {
			return invalid("model.layers[%d] must be positive, got %d", i, n)
		}
	}
	if _, err := nn.ParseActivation(c.Model.Activation); err != nil {
		return invalid("model.activation: %v", err)
	}
	if _, err := nn.ParseActivation(c.Model.OutputActivation); err != nil {
		return invalid("model.output_activation: %v", err)
	}

	if c.Train.Epochs <= 0 {
		return invalid("train.epochs must be positive, got %d", c.Train.Epochs)
	}
	if c.Train.LearningRate <= 0 {
		return invalid("train.learning_rate must be positive, got %g", c.Train.LearningRate)
	}
	if c.Train.Momentum < 0 || c.Train.Momentum >= 1 {
		return invalid("train.momentum must be in [0, 1), got %g", c.Train.Momentum)
	}
	switch c.Train.Optimizer {
	case OptimizerSGD, OptimizerAdam:
	default:
		return invalid("train.optimizer must be %q or %q, got %q", OptimizerSGD, OptimizerAdam, c.Train.Optimizer)
	}
	switch c.Train.Loss {
	case LossSSE, LossMSE:
	default:
		return invalid("train.loss must be %q or %q, got %q", LossSSE, LossMSE, c.Train.Loss)
	}
	if c.Train.LogEvery < 0 {
		return invalid("train.log_every must not be negative, got %d", c.Train.LogEvery)
	}

	if len(c.Samples) == 0 {
		return invalid("at least one sample is required")
	}
	outputs := c.Model.Layers[len(c.Model.Layers)-1]
	for i, s := range c.Samples {
		if len(s.X) != c.Model.Inputs {
			return invalid("sample %d: x has %d values, model expects %d", i, len(s.X), c.Model.Inputs)
		}
		if len(s.Y) != outputs {
			return invalid("sample %d: y has %d values, model produces %d", i, len(s.Y), outputs)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.Wrap(ErrInvalidConfig, fmt.Sprintf(format, args...))
}
