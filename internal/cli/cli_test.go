package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfusion/expansion"
)

// run executes the command tree with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand(&out, &errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return out.String(), errOut.String(), err
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	logger.Debug("hidden")
	assert.Zero(t, buf.Len())
	logger.Info("shown")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	newLogger(&buf, log.DebugLevel).Debug("detail")
	assert.Contains(t, buf.String(), "detail")
}

func TestLoggerContext(t *testing.T) {
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))

	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	assert.Same(t, l, loggerFromContext(withLogger(context.Background(), l)))
}

func TestVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2026-01-01")
	defer SetVersion("dev", "", "")

	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "lvfusion 1.0.0")
	assert.Contains(t, out, "commit: abc123")
}

func TestSolveDenoise(t *testing.T) {
	out, logs, err := run(t, "solve", "--width", "6", "--height", "3", "--labels", "2", "--noise", "0.2", "--higher-order", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, expansion.StateConverged.String())
	assert.Contains(t, out, "observed")
	assert.Contains(t, out, "segments")
	// two 6×3 panels
	assert.Equal(t, 2*18, strings.Count(out, cellGlyph))
	assert.Contains(t, logs, "inference finished")
}

func TestSolveVerboseLogsSteps(t *testing.T) {
	_, logs, err := run(t, "solve", "-v", "--model", "chain", "--variables", "5", "--labels", "3")
	require.NoError(t, err)
	assert.Contains(t, logs, "DEBU")
	assert.Contains(t, logs, "alpha")
}

func TestSolveConfigWithOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[solver]
max_iterations = 50
initialization = "LOCALOPT"

[model]
kind = "chain"
variables = 5
labels = 3
`), 0o600))

	out, _, err := run(t, "solve", "--config", path, "--max-iterations", "0")
	require.NoError(t, err)
	assert.Contains(t, out, expansion.StateBudgetExhausted.String())
	// chain labelings are printed as a slice
	assert.Contains(t, out, "[0 1 1 2 2]")
	assert.NotContains(t, out, cellGlyph)
}

func TestSolveExplicitOrderFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
solver:
  label_order: EXPLICIT
  order: [1, 0]
model:
  kind: chain
  variables: 4
  labels: 2
`), 0o600))

	_, _, err := run(t, "solve", "--config", path)
	require.NoError(t, err)

	_, _, err = run(t, "solve", "--config", path, "--order", "0,0")
	require.ErrorIs(t, err, expansion.ErrInvalidLabelOrder)
}

func TestSolveFromObserved(t *testing.T) {
	out, _, err := run(t, "solve", "--width", "5", "--height", "2", "--noise", "0.3", "--from-observed")
	require.NoError(t, err)
	assert.Contains(t, out, "labeling")

	_, _, err = run(t, "solve", "--model", "chain", "--from-observed")
	require.Error(t, err)
}

func TestSolveBadFlags(t *testing.T) {
	_, _, err := run(t, "solve", "--init", "sometimes")
	require.ErrorIs(t, err, expansion.ErrUnknownInitialization)

	_, _, err = run(t, "solve", "--config", "run.ini")
	require.Error(t, err)
}

func TestBinary(t *testing.T) {
	out, _, err := run(t, "binary", "--width", "4", "--height", "3", "--noise", "0.2", "--higher-order", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "qpbo")
	assert.Contains(t, out, "energy")
	assert.Equal(t, 2*12, strings.Count(out, cellGlyph))

	out, _, err = run(t, "binary", "--model", "chain", "--variables", "6", "--binary", "exhaustive")
	require.NoError(t, err)
	assert.Contains(t, out, "exhaustive")
}

func TestBinaryRejectsMultiLabel(t *testing.T) {
	_, _, err := run(t, "binary", "--labels", "3")
	require.ErrorIs(t, err, expansion.ErrUnsupportedLabelCount)
}

func TestRenderGrid(t *testing.T) {
	s := renderGrid([][]int{{0, 1}, {9, 0}})
	assert.Equal(t, 4, strings.Count(s, cellGlyph))
	assert.Equal(t, 1, strings.Count(s, "\n"))
}

func TestRenderSummary(t *testing.T) {
	s := renderSummary([2]string{"a", "1"}, [2]string{"state", "converged"})
	lines := strings.Split(s, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "  1"))
	assert.True(t, strings.HasSuffix(lines[1], "  converged"))
}

func TestRenderLabeling(t *testing.T) {
	assert.Equal(t, "[1 2 3]", renderLabeling([]int{1, 2, 3}))
	assert.Contains(t, renderLabeling(make([]int, 100)), "36 more")
}
