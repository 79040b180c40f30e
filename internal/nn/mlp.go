package nn

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// MLP is a multi-layer perceptron.
//
// nouts lists the size of every layer, the last one being the output layer:
// NewMLP(3, []int{4, 4, 1}) builds 3 -> 4 -> 4 -> 1.
//
// Example:
//
//	model := nn.NewMLP(3, []int{4, 4, 1}, nn.WithSeed(1))
//	pred := model.Forward(nn.Inputs(2, 3, -1))[0]
type MLP struct {
	nin    int
	layers []*Layer
}

// NewMLP creates a multi-layer perceptron with nin inputs.
func NewMLP(nin int, nouts []int, opts ...Option) *MLP {
	if len(nouts) == 0 {
		panic("nn: MLP needs at least one layer")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	sizes := append([]int{nin}, nouts...)
	layers := make([]*Layer, len(nouts))
	for i := range layers {
		act := o.hidden
		if i == len(layers)-1 {
			act = o.output
		}
		layers[i] = newLayer(sizes[i], sizes[i+1], act, o, fmt.Sprintf("l%d.", i))
	}

	return &MLP{nin: nin, layers: layers}
}

// Forward applies all layers in sequence.
func (m *MLP) Forward(x []*autodiff.Value) []*autodiff.Value {
	for _, layer := range m.layers {
		x = layer.Forward(x)
	}
	return x
}

// ForwardBatch applies all layers to every sample, layer by layer.
func (m *MLP) ForwardBatch(xs [][]*autodiff.Value) [][]*autodiff.Value {
	for _, layer := range m.layers {
		xs = layer.ForwardBatch(xs)
	}
	return xs
}

// Parameters returns the parameters of every layer, in layer order.
func (m *MLP) Parameters() []*autodiff.Value {
	var params []*autodiff.Value
	for _, layer := range m.layers {
		params = append(params, layer.Parameters()...)
	}
	return params
}

// Layers returns the network layers.
func (m *MLP) Layers() []*Layer {
	return m.layers
}

// String describes the layer sizes, e.g. "MLP(3 -> 4 -> 4 -> 1)".
func (m *MLP) String() string {
	s := fmt.Sprintf("MLP(%d", m.nin)
	for _, l := range m.layers {
		s += fmt.Sprintf(" -> %d", len(l.neurons))
	}
	return s + ")"
}
