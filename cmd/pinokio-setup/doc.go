// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI for the pinokio-setup tool.
//
// The tool is a single root command: it provisions a FaceFusion checkout,
// its virtual environment and dependencies, and emits the Pinokio
// descriptor files, then exits.
package cmd
