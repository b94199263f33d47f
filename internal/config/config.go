// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the name of the optional config file (without extension).
	ConfigFileName = "setup"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "yaml"
	// EnvPrefix is the prefix for environment variable overrides
	// (PINOKIO_SETUP_VARIANT, PINOKIO_SETUP_VERBOSE).
	EnvPrefix = "PINOKIO_SETUP"

	// DefaultVariant is the acceleration backend used when nothing else
	// is configured.
	DefaultVariant = "default"
)

// Variants are the acceleration backends FaceFusion's installer accepts
// for its --onnxruntime flag.
var Variants = []string{"default", "cuda", "rocm", "directml", "openvino"}

// Config is the loaded run configuration.
type Config struct {
	// Variant selects the onnxruntime acceleration backend.
	Variant string
	// Verbose enables debug-level status output.
	Verbose bool
}

// Load reads setup.yaml from rootDir (if present) and environment
// variables, and validates the result. A missing config file is not an
// error; defaults apply.
func Load(rootDir string) (*Config, error) {
	v := viper.New()
	v.SetDefault("variant", DefaultVariant)
	v.SetDefault("verbose", false)

	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileExt)
	v.AddConfigPath(rootDir)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Variant: v.GetString("variant"),
		Verbose: v.GetBool("verbose"),
	}
	if err := ValidateVariant(cfg.Variant); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateVariant checks the variant against the fixed enumeration.
func ValidateVariant(variant string) error {
	for _, v := range Variants {
		if variant == v {
			return nil
		}
	}
	return fmt.Errorf("unknown variant %q (expected one of: %s)", variant, strings.Join(Variants, ", "))
}
