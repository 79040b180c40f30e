// Package main provides the micrograd CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pkg/errors"
)

const version = "v0.1.0"

func main() {
	// Minimal logger until flags are parsed.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run dispatches to a subcommand. stdout receives command output, stderr
// receives logs and usage text.
func run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	if len(args) == 0 {
		usage(stderr)
		return &ExitError{Code: 2}
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "micrograd %s\n", version)
		return nil
	case "train":
		return runTrain(ctx, stdout, stderr, args[1:])
	case "dot":
		return runDot(stdout, stderr, args[1:])
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", args[0])}
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `
micrograd - scalar reverse-mode autodiff with a tiny neural network library.

Usage:
  micrograd <command> [options]

Commands:
  train      Train an MLP described by an HCL config (or the built-in demo).
  dot        Print the graph of an example expression in Graphviz DOT.
  version    Show version.

Run 'micrograd <command> -h' for command options.
`)
}
