package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes the step response of
// y[k] = 1.5y[k-1] - 0.7y[k-2] + 0.5u[k-2] + 0.1u[k-3] as CSV.
func writeScenario(t *testing.T, dir string) string {
	t.Helper()
	n := 50
	u := make([]float64, n)
	y := make([]float64, n)
	for k := 5; k < n; k++ {
		u[k] = 1
	}
	for k := 3; k < n; k++ {
		y[k] = 1.5*y[k-1] - 0.7*y[k-2] + 0.5*u[k-2] + 0.1*u[k-3]
	}

	var b strings.Builder
	b.WriteString("t,u,y\n")
	for k := 0; k < n; k++ {
		fmt.Fprintf(&b, "%d,%g,%.17g\n", k, u[k], y[k])
	}
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFitCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeScenario(t, dir)
	predPath := filepath.Join(dir, "pred.csv")
	plotPath := filepath.Join(dir, "fit.png")

	out, err := execute(t, "fit", "--data", data, "--na", "2", "--nb", "2", "--nk", "1",
		"--mode", "simulate", "--out", predPath, "--plot", plotPath, "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "ARX(2,2,1) mode=simulate shift=none")
	assert.Contains(t, out, "K: ")
	assert.Contains(t, out, "Root-mean-squared-error: 0.000")
	assert.Contains(t, out, "rank      4/4")

	pred, err := os.ReadFile(predPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(pred)), "\n")
	require.Len(t, lines, 51)
	assert.Equal(t, "t,u,y,y_pred", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ","), "undefined prediction should be empty: %q", lines[1])

	info, err := os.Stat(plotPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestFitCommandConfigFile(t *testing.T) {
	dir := t.TempDir()
	data := writeScenario(t, dir)
	cfgPath := filepath.Join(dir, "arxid.yaml")
	content := fmt.Sprintf("data:\n  path: %s\nmodel:\n  na: 2\n  nb: 2\n  nk: 1\n  mode: step\nlog:\n  level: error\n", data)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	out, err := execute(t, "fit", "--config", cfgPath, "--summary=false")
	require.NoError(t, err)
	assert.Contains(t, out, "mode=step")
	assert.NotContains(t, out, "ljung-box")
}

func TestFitCommandErrors(t *testing.T) {
	dir := t.TempDir()
	data := writeScenario(t, dir)

	_, err := execute(t, "fit", "--log-level", "error")
	assert.ErrorContains(t, err, "no data file")

	_, err = execute(t, "fit", "--data", data, "--mode", "forecast", "--log-level", "error")
	assert.Error(t, err)

	_, err = execute(t, "fit", "--data", data, "--na", "0", "--log-level", "error")
	assert.Error(t, err)

	_, err = execute(t, "fit", "--data", filepath.Join(dir, "missing.csv"), "--log-level", "error")
	assert.Error(t, err)
}

func TestSearchCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeScenario(t, dir)

	out, err := execute(t, "search", "--data", data, "--max-na", "2", "--max-nb", "2", "--max-nk", "1",
		"--criterion", "sim", "--workers", "2", "--top", "3", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "Best model: ARX(2,2,1)")
	assert.Contains(t, out, "8 models evaluated")
	assert.Contains(t, out, "sim RMSE")
}
