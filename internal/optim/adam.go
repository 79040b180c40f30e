package optim

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Adam keeps running averages of each parameter's gradient and squared
// gradient, with bias correction:
//
//	m = beta1 * m + (1 - beta1) * grad
//	v = beta2 * v + (1 - beta2) * grad²
//	param = param - lr * m̂ / (sqrt(v̂) + eps)
type Adam struct {
	params []*autodiff.Value
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int                         // Timestep for bias correction
	m      map[*autodiff.Value]float64 // First moment estimates
	v      map[*autodiff.Value]float64 // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer.
func NewAdam(params []*autodiff.Value, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      make(map[*autodiff.Value]float64),
		v:      make(map[*autodiff.Value]float64),
	}
}

// Step performs a single optimization step.
func (a *Adam) Step() error {
	if err := checkLeaves(a.params); err != nil {
		return errors.Wrap(err, "adam")
	}

	a.t++
	biasCorrection1 := 1.0 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1.0 - math.Pow(a.beta2, float64(a.t))

	for _, param := range a.params {
		g := param.Grad()

		m := a.beta1*a.m[param] + (1.0-a.beta1)*g
		v := a.beta2*a.v[param] + (1.0-a.beta2)*g*g
		a.m[param] = m
		a.v[param] = v

		mHat := m / biasCorrection1
		vHat := v / biasCorrection2

		_ = param.Update(param.Data() - a.lr*mHat/(math.Sqrt(vHat)+a.eps))
	}
	return nil
}

// ZeroGrad clears gradients for all parameters.
func (a *Adam) ZeroGrad() {
	zeroGrad(a.params)
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) {
	a.lr = lr
}

// StateDict returns the optimizer state.
//
// State keys: "step", "m.{param_index}" and "v.{param_index}".
func (a *Adam) StateDict() map[string]float64 {
	stateDict := map[string]float64{"step": float64(a.t)}
	for i, param := range a.params {
		if m, ok := a.m[param]; ok {
			stateDict[fmt.Sprintf("m.%d", i)] = m
		}
		if v, ok := a.v[param]; ok {
			stateDict[fmt.Sprintf("v.%d", i)] = v
		}
	}
	return stateDict
}

// LoadStateDict restores moment estimates and the timestep saved by StateDict.
func (a *Adam) LoadStateDict(stateDict map[string]float64) error {
	m := make(map[*autodiff.Value]float64)
	v := make(map[*autodiff.Value]float64)
	t := 0

	for key, value := range stateDict {
		if key == "step" {
			t = int(value)
			continue
		}

		var kind rune
		var i int
		if _, err := fmt.Sscanf(key, "%c.%d", &kind, &i); err != nil || (kind != 'm' && kind != 'v') {
			return errors.Errorf("adam: unexpected state key %q", key)
		}
		if i < 0 || i >= len(a.params) {
			return errors.Errorf("adam: state key %q out of range for %d parameters", key, len(a.params))
		}
		if kind == 'm' {
			m[a.params[i]] = value
		} else {
			v[a.params[i]] = value
		}
	}

	a.t, a.m, a.v = t, m, v
	return nil
}
