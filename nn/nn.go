// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neurons, layers and multi-layer perceptrons built from
// autodiff values.
//
// # Basic Usage
//
//	model := nn.NewMLP(3, []int{4, 4, 1}, nn.WithSeed(1))
//
//	xs := [][]*autodiff.Value{nn.Inputs(2, 3, -1), nn.Inputs(3, -1, 0.5)}
//	ys := nn.Inputs(1, -1)
//
//	preds := model.ForwardBatch(xs)
//	loss, err := nn.SSE(nn.Column(preds, 0), ys)
//	if err != nil {
//	    return err
//	}
//	nn.ZeroGrad(model)
//	loss.Backward()
//
// Parameters are leaf values; update them with an optimizer from package optim.
package nn

import (
	"math/rand"

	"github.com/born-ml/micrograd/autodiff"
	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/parallel"
)

// Module is implemented by every network component.
type Module = nn.Module

// ZeroGrad resets the gradients of all parameters of m.
func ZeroGrad(m Module) {
	nn.ZeroGrad(m)
}

// Inputs wraps raw numbers as leaf values.
func Inputs(xs ...float64) []*autodiff.Value {
	return nn.Inputs(xs...)
}

// Datas returns the data of each value.
func Datas(values []*autodiff.Value) []float64 {
	return nn.Datas(values)
}

// Activations

// Activation is the nonlinearity applied at the end of a neuron.
type Activation = nn.Activation

// Supported activations.
const (
	Tanh    = nn.Tanh
	ReLU    = nn.ReLU
	Sigmoid = nn.Sigmoid
	Linear  = nn.Linear
)

// ParseActivation returns the activation named "tanh", "relu", "sigmoid" or "linear".
func ParseActivation(name string) (Activation, error) {
	return nn.ParseActivation(name)
}

// ErrUnknownActivation is returned by ParseActivation.
var ErrUnknownActivation = nn.ErrUnknownActivation

// Layers

// Neuron computes act(Σ wᵢxᵢ + b).
type Neuron = nn.Neuron

// NewNeuron creates a neuron with nin inputs. A nil rng uses the global source.
func NewNeuron(nin int, act Activation, rng *rand.Rand) *Neuron {
	return nn.NewNeuron(nin, act, rng)
}

// Layer is a row of neurons sharing the same inputs.
type Layer = nn.Layer

// NewLayer creates a layer of nout neurons with nin inputs each.
func NewLayer(nin, nout int, opts ...Option) *Layer {
	return nn.NewLayer(nin, nout, opts...)
}

// MLP is a multi-layer perceptron.
type MLP = nn.MLP

// NewMLP creates a multi-layer perceptron.
//
// Example:
//
//	model := nn.NewMLP(3, []int{4, 4, 1}, nn.WithOutputActivation(nn.Linear))
func NewMLP(nin int, nouts []int, opts ...Option) *MLP {
	return nn.NewMLP(nin, nouts, opts...)
}

// Options

// Option configures NewLayer and NewMLP.
type Option = nn.Option

// WithActivation sets the hidden layer activation.
func WithActivation(a Activation) Option {
	return nn.WithActivation(a)
}

// WithOutputActivation sets the activation of the last MLP layer.
func WithOutputActivation(a Activation) Option {
	return nn.WithOutputActivation(a)
}

// WithRand sets the random source used to initialize parameters.
func WithRand(rng *rand.Rand) Option {
	return nn.WithRand(rng)
}

// WithSeed initializes parameters from a seeded source.
func WithSeed(seed int64) Option {
	return nn.WithSeed(seed)
}

// WithWorkers evaluates neurons and samples on up to n goroutines.
// n < 2 evaluates sequentially.
func WithWorkers(n int) Option {
	cfg := parallel.DefaultConfig()
	cfg.NumWorkers = n
	return nn.WithParallel(cfg)
}

// Loss functions

// ErrLengthMismatch is returned when predictions and targets differ in length.
var ErrLengthMismatch = nn.ErrLengthMismatch

// SSE computes the sum of squared errors.
func SSE(predictions, targets []*autodiff.Value) (*autodiff.Value, error) {
	return nn.SSE(predictions, targets)
}

// MSE computes the mean squared error.
func MSE(predictions, targets []*autodiff.Value) (*autodiff.Value, error) {
	return nn.MSE(predictions, targets)
}

// Column returns the i-th output of every sample.
func Column(outputs [][]*autodiff.Value, i int) []*autodiff.Value {
	return nn.Column(outputs, i)
}
