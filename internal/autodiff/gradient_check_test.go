package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// expression builds a scalar expression over leaf inputs.
type expression func(in []*autodiff.Value) *autodiff.Value

// checkGradient compares backward gradients of expr at point against central differences.
func checkGradient(t *testing.T, expr expression, point []float64, tolerance float64) {
	t.Helper()

	leaves := make([]*autodiff.Value, len(point))
	for i, p := range point {
		leaves[i] = autodiff.NewValue(p)
	}
	expr(leaves).Backward()

	f := func(x []float64) float64 {
		in := make([]*autodiff.Value, len(x))
		for i, xi := range x {
			in[i] = autodiff.NewValue(xi)
		}
		return expr(in).Data()
	}
	numerical := fd.Gradient(nil, f, point, &fd.Settings{Formula: fd.Central, Step: 1e-6})

	for i, leaf := range leaves {
		assert.InDelta(t, numerical[i], leaf.Grad(), tolerance, "input %d", i)
	}
}

func TestNumericalGradient(t *testing.T) {
	tests := []struct {
		name  string
		expr  expression
		point []float64
	}{
		{
			name:  "square",
			expr:  func(in []*autodiff.Value) *autodiff.Value { return in[0].Mul(in[0]) },
			point: []float64{3},
		},
		{
			name: "composite",
			expr: func(in []*autodiff.Value) *autodiff.Value {
				return autodiff.Mul(autodiff.Add(in[0], 2), 3)
			},
			point: []float64{5},
		},
		{
			name: "rational",
			expr: func(in []*autodiff.Value) *autodiff.Value {
				num := in[0].Mul(in[1]).Sub(in[1].Pow(3))
				den := autodiff.Add(in[0].Pow(2), 1)
				return num.Div(den)
			},
			point: []float64{-1.3, 0.7},
		},
		{
			name: "activations",
			expr: func(in []*autodiff.Value) *autodiff.Value {
				a := in[0].Mul(in[1]).Tanh()
				b := in[1].Exp().Add(in[2].ReLU())
				return a.Mul(b).Add(in[2].Log())
			},
			point: []float64{0.4, -0.9, 1.6},
		},
		{
			name: "reused_intermediate",
			expr: func(in []*autodiff.Value) *autodiff.Value {
				s := in[0].Add(in[1])
				return s.Mul(s).Mul(s).Sub(s.Neg().Exp())
			},
			point: []float64{0.2, 0.5},
		},
		{
			name: "micrograd_example",
			expr: func(in []*autodiff.Value) *autodiff.Value {
				a, b := in[0], in[1]
				c := a.Add(b)
				d := a.Mul(b).Add(b.Pow(3))
				c = c.Add(c).Add(1)
				c = autodiff.Add(c, autodiff.Add(c, 1)).Add(a.Neg())
				d = autodiff.Add(d, autodiff.Mul(d, 2)).Add(b.Add(a).ReLU())
				d = autodiff.Add(d, autodiff.Mul(3, d)).Add(b.Sub(a).ReLU())
				e := c.Sub(d)
				f := e.Pow(2)
				g := autodiff.Div(f, 2)
				return g.Add(autodiff.Div(10.0, f))
			},
			point: []float64{-4, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkGradient(t, tt.expr, tt.point, 1e-4)
		})
	}
}
