package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/checkpoint"
	"github.com/born-ml/micrograd/internal/config"
	"github.com/born-ml/micrograd/internal/ctxlog"
	"github.com/born-ml/micrograd/internal/graphviz"
	"github.com/born-ml/micrograd/internal/trainer"
)

// ExitError carries a process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// trainOptions holds the parsed flags of the train command.
type trainOptions struct {
	configPath string
	savePath   string
	resumePath string
	logLevel   string
	logFormat  string
}

// parseTrain parses train flags. It reports shouldExit when -h was given.
func parseTrain(args []string, output io.Writer) (opts trainOptions, shouldExit bool, err error) {
	flagSet := flag.NewFlagSet("train", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, "\nUsage:\n  micrograd train [options]\n\nOptions:\n")
		flagSet.PrintDefaults()
	}

	flagSet.StringVar(&opts.configPath, "config", "", "Path to an HCL training config. Empty uses the built-in demo.")
	flagSet.StringVar(&opts.savePath, "save", "", "Write a checkpoint of the trained model to this file.")
	flagSet.StringVar(&opts.resumePath, "resume", "", "Resume training from a checkpoint file.")
	flagSet.StringVar(&opts.logLevel, "log-level", "info", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flagSet.StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return opts, true, nil
		}
		return opts, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return opts, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", flagSet.Arg(0))}
	}

	opts.logFormat = strings.ToLower(opts.logFormat)
	if opts.logFormat != "text" && opts.logFormat != "json" {
		return opts, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	if _, ok := ctxlog.ParseLevel(opts.logLevel); !ok {
		return opts, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	return opts, false, nil
}

func runTrain(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	opts, shouldExit, err := parseTrain(args, stderr)
	if err != nil || shouldExit {
		return err
	}

	logger := ctxlog.New(stderr, opts.logLevel, opts.logFormat)
	ctx = ctxlog.WithLogger(ctx, logger)

	cfg := config.Default()
	if opts.configPath != "" {
		if cfg, err = config.Load(ctx, opts.configPath); err != nil {
			return &ExitError{Code: 1, Message: err.Error()}
		}
	}

	var trainOpts []trainer.Option
	if opts.resumePath != "" {
		ckpt, err := checkpoint.Load(opts.resumePath)
		if err != nil {
			return &ExitError{Code: 1, Message: err.Error()}
		}
		trainOpts = append(trainOpts, trainer.WithCheckpoint(ckpt))
	}

	result, err := trainer.Run(ctx, cfg, trainOpts...)
	if err != nil {
		return err
	}

	if opts.savePath != "" {
		if err := checkpoint.Save(opts.savePath, result.Checkpoint()); err != nil {
			return err
		}
		logger.Info("Checkpoint saved", "path", opts.savePath, "epoch", result.Epoch)
	}

	fmt.Fprintf(stdout, "model: %s\n", result.Model)
	fmt.Fprintf(stdout, "final loss: %.6f\n", result.FinalLoss())
	for i, pred := range result.Predictions {
		fmt.Fprintf(stdout, "sample %d: target %v prediction %s\n", i, cfg.Samples[i].Y, formatFloats(pred))
	}
	return nil
}

func formatFloats(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("%.4f", x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// examples are the expressions the dot command can render.
var examples = map[string]func() *autodiff.Value{
	"neuron":     neuron,
	"neuron-exp": neuronExp,
}

func runDot(stdout, stderr io.Writer, args []string) error {
	flagSet := flag.NewFlagSet("dot", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	expr := flagSet.String("expr", "neuron", "Expression to render. Options: 'neuron', 'neuron-exp'.")
	noGrad := flagSet.Bool("no-grad", false, "Render before running backward (all gradients zero).")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return &ExitError{Code: 2, Message: err.Error()}
	}

	build, ok := examples[*expr]
	if !ok {
		return &ExitError{Code: 2, Message: fmt.Sprintf("unknown expression %q", *expr)}
	}

	root := build()
	if !*noGrad {
		root.Backward()
	}
	return graphviz.Write(stdout, root, strings.ReplaceAll(*expr, "-", "_"))
}

// neuron builds o = tanh(x1*w1 + x2*w2 + b) with the micrograd walkthrough values.
func neuron() *autodiff.Value {
	x1 := autodiff.NewLabeled(2, "x1")
	x2 := autodiff.NewLabeled(0, "x2")
	w1 := autodiff.NewLabeled(-3, "w1")
	w2 := autodiff.NewLabeled(1, "w2")
	b := autodiff.NewLabeled(6.8813735870195432, "b")

	x1w1 := x1.Mul(w1).SetLabel("x1*w1")
	x2w2 := x2.Mul(w2).SetLabel("x2*w2")
	sum := x1w1.Add(x2w2).SetLabel("x1*w1 + x2*w2")
	n := sum.Add(b).SetLabel("n")
	return n.Tanh().SetLabel("o")
}

// neuronExp is neuron with tanh expanded as (e^2n - 1) / (e^2n + 1).
func neuronExp() *autodiff.Value {
	x1 := autodiff.NewLabeled(2, "x1")
	x2 := autodiff.NewLabeled(0, "x2")
	w1 := autodiff.NewLabeled(-3, "w1")
	w2 := autodiff.NewLabeled(1, "w2")
	b := autodiff.NewLabeled(6.8813735870195432, "b")

	n := x1.Mul(w1).Add(x2.Mul(w2)).Add(b).SetLabel("n")
	e := autodiff.Mul(2, n).Exp().SetLabel("e")
	return autodiff.Div(autodiff.Sub(e, 1), autodiff.Add(e, 1)).SetLabel("o")
}
