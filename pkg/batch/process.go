package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// process runs the solver on one input, sending both of its output streams to output.
func (r *Runner) process(ctx context.Context, input, output string) (result Result) {
	result = Result{Input: input, Output: output, ExitCode: -1}
	start := time.Now()
	defer func() { result.Duration = time.Since(start) }()

	if r.layout == LayoutMirror {
		if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
			result.Err = fmt.Errorf("cannot create output directory: %w", err)
			return result
		}
	}

	file, err := os.Create(output)
	if err != nil {
		result.Err = fmt.Errorf("cannot create output file: %w", err)
		return result
	}

	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := command(runCtx, r.executable, input)
	// A single descriptor for both streams keeps them interleaved in emission order
	cmd.Stdout = file
	cmd.Stderr = file

	runErr := cmd.Run()
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}
	closeErr := file.Close()

	var exitErr *exec.ExitError
	switch {
	case runErr != nil && ctx.Err() != nil:
		result.Err = ctx.Err()
	case runErr != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded):
		result.Err = fmt.Errorf("%w after %v", ErrTimeout, r.timeout)
	case runErr != nil && !errors.As(runErr, &exitErr): // Non-zero exit codes are not failures
		result.Err = runErr
	case closeErr != nil:
		result.Err = fmt.Errorf("cannot close output file: %w", closeErr)
	}
	return result
}
