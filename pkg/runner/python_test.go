package runner

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requirePython(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}
}

func TestRunNoBlocks(t *testing.T) {
	r := New("")
	_, _, err := r.Run(context.Background(), "# Just markdown\n\n```python\nprint('display only')\n```")
	assert.ErrorIs(t, err, ErrNoBlocks)
}

func TestRunJoinsBlocks(t *testing.T) {
	requirePython(t)
	r := New("")

	src := "```python:run\nx = 2\n```\n\ntext\n\n```python:run\nprint(x * 21)\n```\n"
	lines, done, err := r.Run(context.Background(), src)
	require.NoError(t, err)

	var out []string
	for line := range lines {
		out = append(out, line)
	}
	require.NoError(t, <-done)
	assert.Equal(t, []string{"42"}, out)
}

func TestRunScriptCapturesStderr(t *testing.T) {
	requirePython(t)
	r := New("")

	lines, done, err := r.RunScript(context.Background(), "import sys\nprint('out')\nprint('err', file=sys.stderr)")
	require.NoError(t, err)

	var out []string
	for line := range lines {
		out = append(out, line)
	}
	require.NoError(t, <-done)
	assert.Contains(t, out, "out")
	assert.Contains(t, out, "err")
}

func TestRunScriptFailure(t *testing.T) {
	requirePython(t)
	r := New("")

	lines, done, err := r.RunScript(context.Background(), "raise SystemExit(3)")
	require.NoError(t, err)
	for range lines {
	}
	assert.Error(t, <-done)
}

func TestMissingInterpreter(t *testing.T) {
	r := New("definitely-not-a-python")
	_, _, err := r.RunScript(context.Background(), "print(1)")
	assert.Error(t, err)
}
