// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It centralizes the OS-family distinction the tool cares about (Windows
// versus everything else) and the per-family layout of executables inside
// a Python virtual environment.
package platform
