package nn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// ErrLengthMismatch is returned when predictions and targets differ in length.
var ErrLengthMismatch = errors.New("predictions and targets must have the same length")

// SSE computes the sum of squared errors.
//
// Loss = Σ (predictions - targets)²
//
// Example:
//
//	preds := model.ForwardBatch(xs)
//	loss, err := nn.SSE(nn.Column(preds, 0), nn.Inputs(ys...))
func SSE(predictions, targets []*autodiff.Value) (*autodiff.Value, error) {
	if len(predictions) != len(targets) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d != %d", len(predictions), len(targets))
	}
	if len(predictions) == 0 {
		return autodiff.NewValue(0), nil
	}

	terms := make([]*autodiff.Value, len(predictions))
	for i, p := range predictions {
		terms[i] = p.Sub(targets[i]).Pow(2)
	}
	return autodiff.Sum(terms[0], terms[1:]...), nil
}

// MSE computes Mean Squared Error loss.
//
// Loss = mean((predictions - targets)²)
func MSE(predictions, targets []*autodiff.Value) (*autodiff.Value, error) {
	sse, err := SSE(predictions, targets)
	if err != nil {
		return nil, err
	}
	if len(predictions) == 0 {
		return sse, nil
	}
	return autodiff.Div(sse, len(predictions)), nil
}

// Column returns the i-th output of every sample.
func Column(outputs [][]*autodiff.Value, i int) []*autodiff.Value {
	col := make([]*autodiff.Value, len(outputs))
	for s, out := range outputs {
		col[s] = out[i]
	}
	return col
}
