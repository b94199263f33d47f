// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"io"
	"os"
)

type (
	// Options adjusts a single invocation. The zero value runs in the
	// current working directory with the process's own standard streams,
	// so the child's output is visible to the operator.
	Options struct {
		// Dir is the working directory for the child. Empty means the
		// caller's current directory.
		Dir string
		// Stdin, Stdout and Stderr override the inherited streams.
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Runner executes external processes. Implementations block until the
	// child exits and return *ExitCodeError for non-zero exit status.
	Runner interface {
		// RunArgs executes an argument vector directly, with no shell
		// metacharacter interpretation.
		RunArgs(ctx context.Context, argv []string, opts Options) error
		// RunShell interprets an opaque script string with a shell.
		RunShell(ctx context.Context, script string, opts Options) error
	}
)

func (o Options) stdin() io.Reader {
	if o.Stdin != nil {
		return o.Stdin
	}
	return os.Stdin
}

func (o Options) stdout() io.Writer {
	if o.Stdout != nil {
		return o.Stdout
	}
	return os.Stdout
}

func (o Options) stderr() io.Writer {
	if o.Stderr != nil {
		return o.Stderr
	}
	return os.Stderr
}
