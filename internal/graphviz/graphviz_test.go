package graphviz

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/micrograd/internal/autodiff"
)

func TestBuild_NodeAndEdgeCount(t *testing.T) {
	a := autodiff.NewLabeled(2, "a")
	b := autodiff.NewLabeled(-3, "b")
	y := a.Mul(b)

	g := Build(y)

	// a, b, y and the mul operation node.
	assert.Equal(t, 4, g.Nodes().Len())
	assert.True(t, g.HasEdgeFromTo(0, 5))
	assert.True(t, g.HasEdgeFromTo(2, 5))
	assert.True(t, g.HasEdgeFromTo(5, 4))
}

func TestBuild_SharedOperandSingleEdge(t *testing.T) {
	x := autodiff.NewValue(3)
	y := x.Mul(x)

	g := Build(y)

	assert.Equal(t, 3, g.Nodes().Len())
	assert.Equal(t, 2, g.Edges().Len())
}

func TestMarshal(t *testing.T) {
	a := autodiff.NewLabeled(2, "a")
	b := autodiff.NewLabeled(-3, "b")
	y := a.Mul(b).SetLabel("y")
	y.Backward()

	out, err := Marshal(y, "product")
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "strict digraph product {")
	assert.Contains(t, s, "rankdir=LR")
	assert.Contains(t, s, `"{ a | data 2.0000 | grad -3.0000 }"`)
	assert.Contains(t, s, `"{ y | data -6.0000 | grad 1.0000 }"`)
	assert.Contains(t, s, `label="*"`)
	assert.Contains(t, s, "v0 -> v2_mul;")
	assert.Contains(t, s, "v1 -> v2_mul;")
	assert.Contains(t, s, "v2_mul -> v2;")
}

func TestWrite_Deterministic(t *testing.T) {
	build := func() *autodiff.Value {
		x := autodiff.NewLabeled(0.5, "x")
		return x.Mul(x).Tanh().Add(x.Exp())
	}

	var first, second bytes.Buffer
	require.NoError(t, Write(&first, build(), "g"))
	require.NoError(t, Write(&second, build(), "g"))

	assert.Equal(t, first.String(), second.String())
	assert.Contains(t, first.String(), "v2_tanh")
}

func TestRecordLabel_EscapesStructuralCharacters(t *testing.T) {
	v := autodiff.NewLabeled(1, "a|b{c}<d>")

	assert.Equal(t, `{ a\|b\{c\}\<d\> | data 1.0000 | grad 0.0000 }`, recordLabel(v))

	g := Build(v)
	assert.Equal(t, 1, g.Nodes().Len())
}
