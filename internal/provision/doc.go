// SPDX-License-Identifier: MPL-2.0

// Package provision prepares a FaceFusion checkout to run under the
// Pinokio launcher.
//
// Setup runs a fixed four-step sequence: clone the pinned upstream
// revision, create a Python virtual environment, install dependencies
// through FaceFusion's own installer, and emit the launcher descriptor
// files. Each step carries its own existence check and is skipped when its
// target is already present; the first failing step aborts the whole run.
// The sequence is strictly serial and never cleans up partial state.
package provision
