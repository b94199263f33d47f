// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"fmt"
	"strconv"
)

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	// The zero value (0) means success.
	ExitCode int

	// ExitCodeError reports that an external process terminated with a
	// non-zero exit status. Cmd is a display form of the invocation.
	ExitCodeError struct {
		Code ExitCode
		Cmd  string
	}
)

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// Error implements the error interface.
func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", e.Cmd, e.Code)
}
