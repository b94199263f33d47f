// SPDX-License-Identifier: MPL-2.0

// Package runner executes external processes synchronously.
//
// Two distinct entry points replace shape auto-detection: RunArgs takes an
// argument vector and never involves a shell, RunShell takes an opaque
// script string and interprets it with an embedded POSIX shell (mvdan/sh).
// Both block until the process exits and surface non-zero exit status as an
// *ExitCodeError. There is no retry and no timeout; a hung child hangs the
// caller.
package runner
