package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// Neuron computes act(Σ wᵢxᵢ + b).
//
// Weights and bias are initialized from U(-1, 1).
type Neuron struct {
	weights []*autodiff.Value
	bias    *autodiff.Value
	act     Activation
}

// NewNeuron creates a neuron with nin inputs.
// A nil rng uses the global random source.
func NewNeuron(nin int, act Activation, rng *rand.Rand) *Neuron {
	return newNeuron(nin, act, rng, "")
}

func newNeuron(nin int, act Activation, rng *rand.Rand, prefix string) *Neuron {
	if nin <= 0 {
		panic(fmt.Sprintf("nn: Neuron needs at least one input, got %d", nin))
	}

	weights := make([]*autodiff.Value, nin)
	for i := range weights {
		weights[i] = autodiff.NewLabeled(uniform(rng), fmt.Sprintf("%sw%d", prefix, i))
	}

	return &Neuron{
		weights: weights,
		bias:    autodiff.NewLabeled(uniform(rng), prefix+"b"),
		act:     act,
	}
}

// Call builds the neuron output for inputs x.
// Panics if len(x) does not match the number of weights.
func (n *Neuron) Call(x []*autodiff.Value) *autodiff.Value {
	if len(x) != len(n.weights) {
		panic(fmt.Sprintf("nn: Neuron expects %d inputs, got %d", len(n.weights), len(x)))
	}

	terms := make([]*autodiff.Value, len(x))
	for i, w := range n.weights {
		terms[i] = w.Mul(x[i])
	}
	return n.act.Apply(autodiff.Sum(n.bias, terms...))
}

// Forward returns the single neuron output.
func (n *Neuron) Forward(x []*autodiff.Value) []*autodiff.Value {
	return []*autodiff.Value{n.Call(x)}
}

// Parameters returns the weights followed by the bias.
func (n *Neuron) Parameters() []*autodiff.Value {
	params := make([]*autodiff.Value, 0, len(n.weights)+1)
	params = append(params, n.weights...)
	return append(params, n.bias)
}

// Weights returns the weight values.
func (n *Neuron) Weights() []*autodiff.Value {
	return n.weights
}

// Bias returns the bias value.
func (n *Neuron) Bias() *autodiff.Value {
	return n.bias
}

// Activation returns the neuron activation.
func (n *Neuron) Activation() Activation {
	return n.act
}
