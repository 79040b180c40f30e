package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/parallel"
)

// setParams overwrites parameter data in order.
func setParams(t *testing.T, m Module, data ...float64) {
	t.Helper()
	params := m.Parameters()
	require.Len(t, params, len(data))
	for i, p := range params {
		require.NoError(t, p.Update(data[i]))
	}
}

func TestNeuron_Forward(t *testing.T) {
	n := NewNeuron(2, Tanh, rand.New(rand.NewSource(1)))
	setParams(t, n, -3, 1, 6.8813735870195432)

	out := n.Forward(Inputs(2, 0))

	require.Len(t, out, 1)
	assert.InDelta(t, math.Sqrt2/2, out[0].Data(), 1e-9)
	assert.Equal(t, Tanh, n.Activation())
	assert.Len(t, n.Weights(), 2)
	assert.Same(t, n.Bias(), n.Parameters()[2])
}

func TestNeuron_Backward(t *testing.T) {
	n := NewNeuron(2, Tanh, nil)
	setParams(t, n, -3, 1, 6.8813735870195432)

	n.Call(Inputs(2, 0)).Backward()

	w := n.Weights()
	assert.InDelta(t, 1.0, w[0].Grad(), 1e-9)
	assert.InDelta(t, 0.0, w[1].Grad(), 1e-9)
	assert.InDelta(t, 0.5, n.Bias().Grad(), 1e-9)
}

func TestNeuron_InputMismatchPanics(t *testing.T) {
	n := NewNeuron(3, Tanh, nil)
	assert.Panics(t, func() { n.Call(Inputs(1, 2)) })
}

func TestNeuron_InitRange(t *testing.T) {
	n := NewNeuron(100, Linear, rand.New(rand.NewSource(7)))
	for _, p := range n.Parameters() {
		assert.GreaterOrEqual(t, p.Data(), -1.0)
		assert.Less(t, p.Data(), 1.0)
		assert.True(t, p.IsLeaf())
	}
}

func TestLayer_Forward(t *testing.T) {
	layer := NewLayer(3, 4, WithSeed(3), WithActivation(ReLU))

	out := layer.Forward(Inputs(1, 2, 3))

	assert.Len(t, out, 4)
	assert.Len(t, layer.Parameters(), 16)
	for _, v := range out {
		assert.GreaterOrEqual(t, v.Data(), 0.0)
	}
	for _, n := range layer.Neurons() {
		assert.Equal(t, ReLU, n.Activation())
	}
}

func TestMLP_Parameters(t *testing.T) {
	m := NewMLP(3, []int{4, 4, 1}, WithSeed(42))

	params := m.Parameters()

	assert.Len(t, params, 4*(3+1)+4*(4+1)+1*(4+1))
	assert.Len(t, m.Layers(), 3)
	assert.Equal(t, "l0.n0.w0", params[0].Label())
	assert.Equal(t, "l0.n0.b", params[3].Label())
	assert.Equal(t, "l2.n0.b", params[len(params)-1].Label())
	assert.Equal(t, "MLP(3 -> 4 -> 4 -> 1)", m.String())
}

func TestMLP_SeedIsReproducible(t *testing.T) {
	a := NewMLP(2, []int{3, 1}, WithSeed(9))
	b := NewMLP(2, []int{3, 1}, WithSeed(9))

	assert.Equal(t, Datas(a.Parameters()), Datas(b.Parameters()))
}

func TestMLP_OutputActivation(t *testing.T) {
	m := NewMLP(2, []int{3, 2}, WithActivation(ReLU), WithOutputActivation(Linear))

	assert.Equal(t, ReLU, m.Layers()[0].Neurons()[0].Activation())
	assert.Equal(t, Linear, m.Layers()[1].Neurons()[1].Activation())
}

func TestMLP_EmptyPanics(t *testing.T) {
	assert.Panics(t, func() { NewMLP(2, nil) })
}

func TestMLP_ForwardBatchMatchesForward(t *testing.T) {
	cfg := parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}
	m := NewMLP(3, []int{4, 4, 1}, WithSeed(5), WithParallel(cfg))
	xs := [][]float64{{2, 3, -1}, {3, -1, 0.5}, {0.5, 1, 1}, {1, 1, -1}}

	batch := make([][]*autodiff.Value, len(xs))
	for i, x := range xs {
		batch[i] = Inputs(x...)
	}
	outs := m.ForwardBatch(batch)

	require.Len(t, outs, len(xs))
	for i, x := range xs {
		single := m.Forward(Inputs(x...))
		assert.Equal(t, Datas(single), Datas(outs[i]))
	}
}

// TestMLP_GradientMatchesNumerical perturbs individual parameters and compares
// the loss slope with the backward gradient.
func TestMLP_GradientMatchesNumerical(t *testing.T) {
	m := NewMLP(3, []int{4, 1}, WithSeed(11), WithParallel(parallel.Sequential()))
	x := []float64{0.5, -1.5, 2}
	target := 0.25

	lossAt := func() *autodiff.Value {
		pred := m.Forward(Inputs(x...))
		loss, err := SSE(pred, Inputs(target))
		require.NoError(t, err)
		return loss
	}

	ZeroGrad(m)
	lossAt().Backward()

	params := m.Parameters()
	for _, i := range []int{0, 3, 7, len(params) - 1} {
		p := params[i]
		original := p.Data()
		f := func(v float64) float64 {
			require.NoError(t, p.Update(v))
			return lossAt().Data()
		}
		want := fd.Derivative(f, original, &fd.Settings{Formula: fd.Central, Step: 1e-6})
		require.NoError(t, p.Update(original))

		assert.InDelta(t, want, p.Grad(), 1e-5, "parameter %s", p.Label())
	}
}

func TestZeroGrad(t *testing.T) {
	m := NewMLP(2, []int{2, 1}, WithSeed(1))
	m.Forward(Inputs(1, -1))[0].Backward()

	ZeroGrad(m)

	for _, p := range m.Parameters() {
		assert.Equal(t, 0.0, p.Grad())
	}
}

func TestActivation_Apply(t *testing.T) {
	x := autodiff.NewValue(0)
	s := Sigmoid.Apply(x)
	s.Backward()

	assert.InDelta(t, 0.5, s.Data(), 1e-12)
	assert.InDelta(t, 0.25, x.Grad(), 1e-12)
	assert.Same(t, x, Linear.Apply(x))
	assert.Equal(t, 0.0, ReLU.Apply(autodiff.NewValue(-2)).Data())
}

func TestParseActivation(t *testing.T) {
	for _, a := range []Activation{Tanh, ReLU, Sigmoid, Linear} {
		got, err := ParseActivation(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	def, err := ParseActivation("")
	require.NoError(t, err)
	assert.Equal(t, Tanh, def)

	_, err = ParseActivation("softmax")
	assert.ErrorIs(t, err, ErrUnknownActivation)
	assert.Equal(t, "unknown", Activation(99).String())
}

func TestSSE(t *testing.T) {
	preds := Inputs(1, 2)
	loss, err := SSE(preds, Inputs(0, 0))
	require.NoError(t, err)
	assert.Equal(t, 5.0, loss.Data())

	loss.Backward()
	assert.Equal(t, 2.0, preds[0].Grad())
	assert.Equal(t, 4.0, preds[1].Grad())
}

func TestMSE(t *testing.T) {
	preds := Inputs(1, 2)
	loss, err := MSE(preds, Inputs(0, 0))
	require.NoError(t, err)
	assert.Equal(t, 2.5, loss.Data())

	empty, err := MSE(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty.Data())
}

func TestLoss_LengthMismatch(t *testing.T) {
	_, err := SSE(Inputs(1), Inputs(1, 2))
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = MSE(Inputs(1, 2), Inputs(1))
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestColumn(t *testing.T) {
	outs := [][]*autodiff.Value{Inputs(1, 2), Inputs(3, 4)}
	assert.Equal(t, []float64{2, 4}, Datas(Column(outs, 1)))
}
