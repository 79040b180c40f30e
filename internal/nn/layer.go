package nn

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/parallel"
)

// Layer is a row of neurons sharing the same inputs.
//
// Neurons are evaluated concurrently according to the parallel config.
// Forward evaluation only reads the parameters, so this is safe; Backward
// must still run on a single goroutine.
type Layer struct {
	neurons  []*Neuron
	parallel parallel.Config
}

// NewLayer creates a layer of nout neurons with nin inputs each.
//
// Example:
//
//	layer := nn.NewLayer(3, 4, nn.WithSeed(42))
//	out := layer.Forward(nn.Inputs(1, 2, 3)) // 4 values
func NewLayer(nin, nout int, opts ...Option) *Layer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newLayer(nin, nout, o.hidden, o, "")
}

func newLayer(nin, nout int, act Activation, o options, prefix string) *Layer {
	if nout <= 0 {
		panic(fmt.Sprintf("nn: Layer needs at least one neuron, got %d", nout))
	}

	neurons := make([]*Neuron, nout)
	for i := range neurons {
		neurons[i] = newNeuron(nin, act, o.rng, fmt.Sprintf("%sn%d.", prefix, i))
	}
	return &Layer{neurons: neurons, parallel: o.parallel}
}

// Forward builds one output per neuron.
func (l *Layer) Forward(x []*autodiff.Value) []*autodiff.Value {
	return parallel.Map(len(l.neurons), func(i int) *autodiff.Value {
		return l.neurons[i].Call(x)
	}, l.parallel)
}

// ForwardBatch builds the outputs for every sample in xs.
// Sample and neuron evaluations are spread over the same worker pool.
func (l *Layer) ForwardBatch(xs [][]*autodiff.Value) [][]*autodiff.Value {
	out := make([][]*autodiff.Value, len(xs))
	for i := range out {
		out[i] = make([]*autodiff.Value, len(l.neurons))
	}
	parallel.ForGrid(len(xs), len(l.neurons), func(s, n int) {
		out[s][n] = l.neurons[n].Call(xs[s])
	}, l.parallel)
	return out
}

// Parameters returns the parameters of every neuron, in neuron order.
func (l *Layer) Parameters() []*autodiff.Value {
	var params []*autodiff.Value
	for _, n := range l.neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}

// Neurons returns the layer neurons.
func (l *Layer) Neurons() []*Neuron {
	return l.neurons
}
