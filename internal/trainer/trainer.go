// Package trainer fits an MLP to the samples of a config.Config.
package trainer

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/checkpoint"
	"github.com/born-ml/micrograd/internal/config"
	"github.com/born-ml/micrograd/internal/ctxlog"
	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/optim"
)

// ErrDiverged is returned when the loss stops being a finite number.
var ErrDiverged = errors.New("training diverged")

// Result is the outcome of a training run.
type Result struct {
	Model       *nn.MLP
	Losses      []float64   // loss before each optimizer step, one per epoch
	Predictions [][]float64 // network outputs per sample after the last step
	Epoch       int         // index of the last completed epoch, counting resumed ones; -1 if none

	train     config.Train
	optimizer optim.Optimizer
}

// Checkpoint snapshots the trained parameters and the optimizer state.
func (r *Result) Checkpoint() *checkpoint.Checkpoint {
	ckpt := checkpoint.New(r.Model.Parameters())
	ckpt.Header.ModelType = r.Model.String()
	state := &checkpoint.TrainingState{
		Epoch:         r.Epoch,
		Loss:          r.FinalLoss(),
		OptimizerType: r.train.Optimizer,
		LearningRate:  r.optimizer.GetLR(),
	}
	if s, ok := r.optimizer.(optim.Stateful); ok {
		state.OptimizerState = s.StateDict()
	}
	ckpt.Header.Checkpoint = state
	return ckpt
}

// Option configures Run.
type Option func(*options)

type options struct {
	resume *checkpoint.Checkpoint
}

// WithCheckpoint starts from the parameters of ckpt instead of a fresh
// initialization. When ckpt carries training state for the same optimizer,
// the optimizer state and the epoch counter are restored too.
func WithCheckpoint(ckpt *checkpoint.Checkpoint) Option {
	return func(o *options) {
		o.resume = ckpt
	}
}

// FinalLoss returns the loss recorded in the last epoch.
func (r *Result) FinalLoss() float64 {
	if len(r.Losses) == 0 {
		return math.NaN()
	}
	return r.Losses[len(r.Losses)-1]
}

// Run trains a freshly initialized network on cfg.Samples.
//
// Each epoch builds the full-batch loss graph, resets the parameter
// gradients, runs Backward from the loss and takes one optimizer step.
// Run stops early with ctx.Err() when ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, opts ...Option) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := ctxlog.FromContext(ctx)

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	hidden, _ := nn.ParseActivation(cfg.Model.Activation)
	output, _ := nn.ParseActivation(cfg.Model.OutputActivation)
	model := nn.NewMLP(cfg.Model.Inputs, cfg.Model.Layers,
		nn.WithActivation(hidden),
		nn.WithOutputActivation(output),
		nn.WithSeed(cfg.Model.Seed),
	)
	opt := newOptimizer(model.Parameters(), cfg.Train)
	start := 0
	if o.resume != nil {
		var err error
		if start, err = resume(ctx, o.resume, model, opt, cfg.Train); err != nil {
			return nil, err
		}
	}

	lossFn := nn.SSE
	if cfg.Train.Loss == config.LossMSE {
		lossFn = nn.MSE
	}

	logger.Info("Starting training",
		"model", model.String(),
		"parameters", len(model.Parameters()),
		"samples", len(cfg.Samples),
		"optimizer", cfg.Train.Optimizer,
		"epochs", cfg.Train.Epochs,
	)

	xs := make([][]*autodiff.Value, len(cfg.Samples))
	var targets []*autodiff.Value
	for i, s := range cfg.Samples {
		xs[i] = nn.Inputs(s.X...)
		targets = append(targets, nn.Inputs(s.Y...)...)
	}

	result := &Result{
		Model:     model,
		Losses:    make([]float64, 0, cfg.Train.Epochs),
		Epoch:     start - 1,
		train:     cfg.Train,
		optimizer: opt,
	}
	last := start + cfg.Train.Epochs - 1
	for epoch := start; epoch <= last; epoch++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		loss, err := lossFn(flatten(model.ForwardBatch(xs)), targets)
		if err != nil {
			return result, errors.Wrapf(err, "epoch %d", epoch)
		}
		if math.IsNaN(loss.Data()) || math.IsInf(loss.Data(), 0) {
			return result, errors.Wrapf(ErrDiverged, "epoch %d: loss %g", epoch, loss.Data())
		}
		result.Losses = append(result.Losses, loss.Data())

		opt.ZeroGrad()
		loss.Backward()
		if err := opt.Step(); err != nil {
			return result, errors.Wrapf(err, "epoch %d", epoch)
		}

		result.Epoch = epoch

		if every := cfg.Train.LogEvery; every > 0 && (epoch%every == 0 || epoch == last) {
			logger.Info("Epoch finished", "epoch", epoch, "loss", loss.Data(), "lr", opt.GetLR())
		} else {
			logger.Debug("Epoch finished", "epoch", epoch, "loss", loss.Data())
		}
	}

	outputs := model.ForwardBatch(xs)
	result.Predictions = make([][]float64, len(outputs))
	for i, out := range outputs {
		result.Predictions[i] = nn.Datas(out)
	}

	logger.Info("Training finished", "loss", result.FinalLoss())
	return result, nil
}

// resume loads ckpt into model and opt and returns the first epoch to run.
func resume(ctx context.Context, ckpt *checkpoint.Checkpoint, model *nn.MLP, opt optim.Optimizer, t config.Train) (int, error) {
	logger := ctxlog.FromContext(ctx)

	if err := ckpt.Restore(model.Parameters()); err != nil {
		return 0, errors.Wrap(err, "resume")
	}
	state := ckpt.Header.Checkpoint
	if state == nil {
		logger.Info("Resumed parameters", "parameters", len(ckpt.Values))
		return 0, nil
	}

	s, ok := opt.(optim.Stateful)
	if !ok || state.OptimizerType != t.Optimizer {
		logger.Warn("Checkpoint optimizer differs, starting with fresh optimizer state",
			"checkpoint", state.OptimizerType, "config", t.Optimizer)
		return 0, nil
	}
	if err := s.LoadStateDict(state.OptimizerState); err != nil {
		return 0, errors.Wrap(err, "resume")
	}

	logger.Info("Resumed training", "epoch", state.Epoch, "loss", state.Loss)
	return state.Epoch + 1, nil
}

func newOptimizer(params []*autodiff.Value, t config.Train) optim.Optimizer {
	if t.Optimizer == config.OptimizerAdam {
		return optim.NewAdam(params, optim.AdamConfig{LR: t.LearningRate})
	}
	return optim.NewSGD(params, optim.SGDConfig{LR: t.LearningRate, Momentum: t.Momentum})
}

func flatten(outputs [][]*autodiff.Value) []*autodiff.Value {
	var flat []*autodiff.Value
	for _, out := range outputs {
		flat = append(flat, out...)
	}
	return flat
}
