package nn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// ErrUnknownActivation is returned by ParseActivation for unrecognized names.
var ErrUnknownActivation = errors.New("unknown activation")

// Activation is the nonlinearity applied at the end of a neuron.
type Activation int

// Supported activations.
const (
	// Tanh applies f(x) = tanh(x). Default for every layer.
	Tanh Activation = iota

	// ReLU applies f(x) = max(0, x).
	ReLU

	// Sigmoid applies σ(x) = 1 / (1 + exp(-x)), built from exp, add and pow.
	Sigmoid

	// Linear applies no nonlinearity. Useful for regression output layers.
	Linear
)

// String returns the activation name.
func (a Activation) String() string {
	switch a {
	case Tanh:
		return "tanh"
	case ReLU:
		return "relu"
	case Sigmoid:
		return "sigmoid"
	case Linear:
		return "linear"
	default:
		return "unknown"
	}
}

// ParseActivation returns the activation with the given name.
func ParseActivation(name string) (Activation, error) {
	switch name {
	case "tanh", "":
		return Tanh, nil
	case "relu":
		return ReLU, nil
	case "sigmoid":
		return Sigmoid, nil
	case "linear":
		return Linear, nil
	}
	return 0, errors.Wrapf(ErrUnknownActivation, "%q", name)
}

// Apply builds the activation of x.
func (a Activation) Apply(x *autodiff.Value) *autodiff.Value {
	switch a {
	case ReLU:
		return x.ReLU()
	case Sigmoid:
		return autodiff.Add(x.Neg().Exp(), 1).Pow(-1)
	case Linear:
		return x
	default:
		return x.Tanh()
	}
}
