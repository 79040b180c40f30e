package nn

import (
	"math/rand"

	"github.com/born-ml/micrograd/internal/parallel"
)

// options configures layer and network construction.
type options struct {
	hidden   Activation
	output   Activation
	rng      *rand.Rand
	parallel parallel.Config
}

func defaultOptions() options {
	return options{
		hidden:   Tanh,
		output:   Tanh,
		parallel: parallel.DefaultConfig(),
	}
}

// Option configures NewLayer and NewMLP.
type Option func(*options)

// WithActivation sets the activation of every layer except the output layer
// of an MLP. For NewLayer it sets the layer activation.
func WithActivation(a Activation) Option {
	return func(o *options) {
		o.hidden = a
	}
}

// WithOutputActivation sets the activation of the last MLP layer.
func WithOutputActivation(a Activation) Option {
	return func(o *options) {
		o.output = a
	}
}

// WithRand sets the random source used to initialize parameters.
// Pass a seeded source for reproducible networks.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithSeed initializes parameters from rand.NewSource(seed).
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed))) //nolint:gosec // reproducible init
}

// WithParallel sets how neuron and sample evaluations are spread over goroutines.
func WithParallel(cfg parallel.Config) Option {
	return func(o *options) {
		o.parallel = cfg
	}
}
