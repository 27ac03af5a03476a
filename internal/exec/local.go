package exec

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/rileyhilliard/sysmon/internal/errors"
)

// Runner runs a local command and returns its stdout. It exists so the
// collector can be tested without the real tools installed.
type Runner interface {
	Capture(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, error)
}

// LocalRunner runs commands on this machine.
type LocalRunner struct{}

// Capture implements Runner.
func (LocalRunner) Capture(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, error) {
	return Capture(ctx, timeout, name, args...)
}

// Capture runs name with args, without a shell, and returns stdout.
// A positive timeout bounds the run; the process is killed when it expires.
// Missing binaries, non-zero exits, and timeouts all return ErrExec errors.
func Capture(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	command := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	runErr := command.Run()
	if runErr == nil {
		return stdout.Bytes(), nil
	}

	if stderrors.Is(runErr, exec.ErrNotFound) {
		return nil, newNotFound(name)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if stderrors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, errors.WrapWithCode(ctxErr, errors.ErrExec,
				fmt.Sprintf("'%s' timed out after %s", name, timeout),
				"The tool may be hung; try running it by hand.")
		}
		return nil, errors.WrapWithCode(ctxErr, errors.ErrExec,
			fmt.Sprintf("'%s' was cancelled", name), "")
	}

	var exitErr *exec.ExitError
	if stderrors.As(runErr, &exitErr) {
		return stdout.Bytes(), HandleExecError(name, stderr.String(), exitErr.ExitCode())
	}

	return nil, errors.WrapWithCode(runErr, errors.ErrExec,
		fmt.Sprintf("Couldn't run '%s'", name),
		"Make sure the command exists and is executable.")
}
