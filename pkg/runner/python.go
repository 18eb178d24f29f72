// Package runner executes the python:run blocks embedded in documents. It is
// a collaborator of the document flow, never invoked from the mutation path:
// callers start a run and consume its output asynchronously.
package runner

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/kbtools/kb/pkg/markdown"
)

// ErrNoBlocks is returned when the source contains no executable blocks.
var ErrNoBlocks = fmt.Errorf("no executable python blocks found; use ```python:run fences")

// Runner executes python code with a configured interpreter.
type Runner struct {
	// Interpreter is the python binary to invoke. Defaults to "python3".
	Interpreter string
}

// New returns a runner for the given interpreter ("" means python3).
func New(interpreter string) *Runner {
	if interpreter == "" {
		interpreter = "python3"
	}
	return &Runner{Interpreter: interpreter}
}

// Run extracts all python:run blocks from the markdown source, joins them
// into one script (source order, blank line separated) and executes it.
// Output lines stream on the returned channel as they are produced; the
// done channel delivers the single completion or error signal after the
// output channel closes. Cancelling ctx kills the interpreter.
func (r *Runner) Run(ctx context.Context, src string) (<-chan string, <-chan error, error) {
	blocks := markdown.ExtractRunBlocks(src)
	if len(blocks) == 0 {
		return nil, nil, ErrNoBlocks
	}
	return r.RunScript(ctx, strings.Join(blocks, "\n\n"))
}

// RunScript executes one python script, streaming combined stdout/stderr.
func (r *Runner) RunScript(ctx context.Context, script string) (<-chan string, <-chan error, error) {
	if _, err := exec.LookPath(r.Interpreter); err != nil {
		return nil, nil, fmt.Errorf("%s not found in PATH", r.Interpreter)
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, nil, err
	}

	cmd := exec.CommandContext(ctx, r.Interpreter, "-c", script)
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, nil, fmt.Errorf("start %s: %w", r.Interpreter, err)
	}
	// The child holds its own copy of the write end.
	pw.Close()

	lines := make(chan string)
	done := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		pr.Close()
		done <- cmd.Wait()
		close(done)
	}()

	return lines, done, nil
}
