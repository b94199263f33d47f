// SPDX-License-Identifier: MPL-2.0

// Package pinokio emits the descriptor files the Pinokio launcher reads to
// present install/start actions and the session URL.
//
// Descriptor content is fixed: it is built from literal templates and the
// embedded local endpoint, never from runtime state. Files that already
// exist are left untouched; re-running the tool never refreshes them.
package pinokio
