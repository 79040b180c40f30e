package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %v", err)
	return exitErr.Code
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), &stdout, &stderr, []string{"version"}))
	assert.Equal(t, "micrograd "+version+"\n", stdout.String())
}

func TestRun_NoArgsPrintsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, nil)
	assert.Equal(t, 2, exitCode(t, err))
	assert.Contains(t, stderr.String(), "Usage:")
}

func TestRun_UnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, []string{"serve"})
	assert.Equal(t, 2, exitCode(t, err))
	assert.Contains(t, err.Error(), `unknown command "serve"`)
}

func TestRun_TrainDefault(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, []string{"train", "-log-level", "warn"})
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "model: MLP(3 -> 4 -> 4 -> 1)")
	assert.Contains(t, out, "final loss:")
	assert.Contains(t, out, "sample 3: target [1]")
	assert.Empty(t, stderr.String())
}

func TestRun_TrainFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.hcl")
	src := `
model {
  layers = [2, 1]
}
train {
  epochs    = 5
  log_every = 1
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, []string{"train", "-config", path, "-log-format", "json"})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "model: MLP(3 -> 2 -> 1)")
	assert.Contains(t, stderr.String(), `"msg":"Epoch finished"`)
	assert.Contains(t, stderr.String(), `"epoch":4`)
}

func TestRun_TrainBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.hcl")
	require.NoError(t, os.WriteFile(path, []byte("train {\n  epochs = -1\n}\n"), 0o600))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, []string{"train", "-config", path})
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), "train.epochs")
}

func TestParseTrain_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad format", []string{"-log-format", "xml"}, "invalid log-format"},
		{"bad level", []string{"-log-level", "trace"}, "invalid log-level"},
		{"unknown flag", []string{"-epochs", "3"}, "flag provided but not defined"},
		{"positional", []string{"extra"}, `unexpected argument "extra"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseTrain(tt.args, &bytes.Buffer{})
			assert.Equal(t, 2, exitCode(t, err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseTrain_Help(t *testing.T) {
	var out bytes.Buffer
	_, shouldExit, err := parseTrain([]string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Contains(t, out.String(), "micrograd train [options]")
}

func TestRun_Dot(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), &stdout, &stderr, []string{"dot"}))

	out := stdout.String()
	assert.Contains(t, out, "strict digraph neuron {")
	assert.Contains(t, out, `"{ o | data 0.7071 | grad 1.0000 }"`)
	assert.Contains(t, out, `"{ x1 | data 2.0000 | grad -1.5000 }"`)
	assert.Contains(t, out, `"{ w1 | data -3.0000 | grad 1.0000 }"`)
}

func TestRun_DotNoGrad(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), &stdout, &stderr, []string{"dot", "-expr", "neuron-exp", "-no-grad"}))

	out := stdout.String()
	assert.Contains(t, out, "strict digraph neuron_exp {")
	assert.Contains(t, out, `"{ o | data 0.7071 | grad 0.0000 }"`)
}

func TestRun_DotUnknownExpression(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, []string{"dot", "-expr", "attention"})
	assert.Equal(t, 2, exitCode(t, err))
}

func TestNeuronExpMatchesNeuron(t *testing.T) {
	a := neuron()
	b := neuronExp()
	a.Backward()
	b.Backward()
	assert.InDelta(t, a.Data(), b.Data(), 1e-12)
}

func TestRun_TrainSaveAndResume(t *testing.T) {
	dir := t.TempDir()
	ckpt := filepath.Join(dir, "model.mgrd")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, []string{"train", "-save", ckpt, "-log-level", "warn"})
	require.NoError(t, err)
	assert.FileExists(t, ckpt)

	stdout.Reset()
	err = run(context.Background(), &stdout, &stderr, []string{"train", "-resume", ckpt, "-save", ckpt})
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "Resumed training")
	assert.Contains(t, stderr.String(), "epoch=199")
}

func TestRun_TrainResumeMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, []string{"train", "-resume", filepath.Join(t.TempDir(), "none.mgrd")})
	assert.Equal(t, 1, exitCode(t, err))
}
