// SPDX-License-Identifier: MPL-2.0

// Package config loads the optional run configuration.
//
// Configuration is intentionally small: the acceleration variant and the
// verbose flag. It is read from an optional setup.yaml next to the target
// root and from PINOKIO_SETUP_* environment variables. The upstream URL,
// pinned revision and served endpoint are fixed constants elsewhere and
// are not configurable.
package config
