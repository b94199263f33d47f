// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ExecRunner is the production Runner. Argument vectors go through os/exec;
// shell scripts go through the embedded mvdan/sh interpreter, which gives
// consistent POSIX semantics on every host family.
type ExecRunner struct {
	logger *log.Logger
}

// New creates an ExecRunner that announces each invocation on the given
// logger before executing it.
func New(logger *log.Logger) *ExecRunner {
	return &ExecRunner{logger: logger}
}

// RunArgs executes argv[0] with the remaining arguments, inheriting the
// standard streams unless overridden in opts.
func (r *ExecRunner) RunArgs(ctx context.Context, argv []string, opts Options) error {
	if len(argv) == 0 {
		return errors.New("empty argument vector")
	}

	display := strings.Join(argv, " ")
	r.echo(display)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	cmd.Stdin = opts.stdin()
	cmd.Stdout = opts.stdout()
	cmd.Stderr = opts.stderr()

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitCodeError{Code: ExitCode(exitErr.ExitCode()), Cmd: display}
		}
		return fmt.Errorf("run %s: %w", argv[0], err)
	}
	return nil
}

// RunShell interprets the script with the embedded shell. External commands
// referenced by the script are resolved from PATH as usual.
func (r *ExecRunner) RunShell(ctx context.Context, script string, opts Options) error {
	r.echo(script)

	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "script")
	if err != nil {
		return fmt.Errorf("parse shell script: %w", err)
	}

	sh, err := interp.New(
		interp.Dir(opts.Dir),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(opts.stdin(), opts.stdout(), opts.stderr()),
	)
	if err != nil {
		return fmt.Errorf("create shell interpreter: %w", err)
	}

	if err := sh.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return &ExitCodeError{Code: ExitCode(status), Cmd: script}
		}
		return fmt.Errorf("run shell script: %w", err)
	}
	return nil
}

func (r *ExecRunner) echo(display string) {
	if r.logger != nil {
		r.logger.Info("running", "cmd", display)
	}
}
