// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LiberTech01/facefusion-libero/internal/platform"
)

// packagingTools are upgraded inside the venv before the installer runs.
var packagingTools = []string{"pip", "wheel", "setuptools"}

// InstallDeps upgrades the venv's packaging tools and runs FaceFusion's
// own installer. A successful install leaves a marker file in the venv;
// when the marker is already present the whole step is skipped.
func (s *Setup) InstallDeps(ctx context.Context) error {
	marker := filepath.Join(s.cfg.EnvDir, depsMarkerName)
	if exists(marker) {
		s.cfg.Logger.Info("dependencies already installed, skipping", "marker", marker)
		return nil
	}

	// Pure path computation from (envDir, family); the venv is not probed.
	layout := platform.LayoutFor(s.cfg.Family)
	python := layout.Python(s.cfg.EnvDir)

	// Upgrade through "python -m pip"; invoking pip's own executable can
	// fail when pip replaces itself on the Windows family.
	s.cfg.Logger.Info("upgrading packaging tools", "tools", packagingTools)
	argv := append([]string{python, "-m", "pip", "install", "-U"}, packagingTools...)
	if err := s.run(ctx, argv, ""); err != nil {
		return err
	}

	// The installer resolves requirements.txt relative to its working
	// directory, not its script path, so it must run from the checkout.
	installer := filepath.Join(s.cfg.RepoDir, installerScript)
	s.cfg.Logger.Info("running facefusion installer", "script", installer, "variant", s.cfg.Variant)
	err := s.run(ctx, []string{
		python, installer,
		"--onnxruntime", s.cfg.Variant,
		"--skip-conda",
	}, s.cfg.RepoDir)
	if err != nil {
		return err
	}

	if s.cfg.DryRun {
		return nil
	}
	if err := os.WriteFile(marker, []byte(s.cfg.Variant+"\n"), 0o644); err != nil {
		return fmt.Errorf("write install marker: %w", err)
	}
	return nil
}
