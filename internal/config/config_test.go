// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Variant != DefaultVariant {
		t.Errorf("Variant = %q, want %q", cfg.Variant, DefaultVariant)
	}
	if cfg.Verbose {
		t.Error("Verbose should default to false")
	}
}

func TestLoadFromFile(t *testing.T) {
	root := t.TempDir()
	content := "variant: cuda\nverbose: true\n"
	if err := os.WriteFile(filepath.Join(root, "setup.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Variant != "cuda" {
		t.Errorf("Variant = %q, want cuda", cfg.Variant)
	}
	if !cfg.Verbose {
		t.Error("Verbose should be true")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PINOKIO_SETUP_VARIANT", "rocm")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Variant != "rocm" {
		t.Errorf("Variant = %q, want rocm", cfg.Variant)
	}
}

func TestLoadRejectsUnknownVariant(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "setup.yaml"), []byte("variant: tensorrt\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(root); err == nil {
		t.Fatal("expected error for unknown variant")
	}
}

func TestValidateVariant(t *testing.T) {
	for _, v := range Variants {
		if err := ValidateVariant(v); err != nil {
			t.Errorf("ValidateVariant(%q) = %v", v, err)
		}
	}
	if err := ValidateVariant("metal"); err == nil {
		t.Error("expected error for unsupported variant")
	}
}
