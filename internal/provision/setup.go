// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/LiberTech01/facefusion-libero/internal/pinokio"
	"github.com/LiberTech01/facefusion-libero/internal/runner"
)

// Setup is the one-shot provisioning sequencer.
type Setup struct {
	cfg *Config
}

// NewSetup builds a Setup rooted at rootDir.
func NewSetup(rootDir string, opts ...Option) *Setup {
	cfg := DefaultConfig(rootDir)
	cfg.Apply(opts...)
	return &Setup{cfg: cfg}
}

// Config exposes the effective configuration.
func (s *Setup) Config() *Config {
	return s.cfg
}

// Run executes the full sequence: checkout, venv, dependencies,
// descriptors. Steps are only skipped by their own existence checks; the
// first failure aborts the run with no cleanup of partial state.
func (s *Setup) Run(ctx context.Context) error {
	if err := s.EnsureRepo(ctx); err != nil {
		return fmt.Errorf("clone facefusion: %w", err)
	}
	if err := s.EnsureEnv(ctx); err != nil {
		return fmt.Errorf("create virtual environment: %w", err)
	}
	if err := s.InstallDeps(ctx); err != nil {
		return fmt.Errorf("install dependencies: %w", err)
	}

	emitter := &pinokio.Emitter{Root: s.cfg.RootDir, DryRun: s.cfg.DryRun, Logger: s.cfg.Logger}
	if err := emitter.WriteAll(); err != nil {
		return fmt.Errorf("write launcher descriptors: %w", err)
	}
	return nil
}

// run dispatches one external invocation, honoring dry-run mode.
func (s *Setup) run(ctx context.Context, argv []string, dir string) error {
	if s.cfg.DryRun {
		s.cfg.Logger.Info("dry-run: would run", "cmd", strings.Join(argv, " "), "dir", dir)
		return nil
	}
	return s.cfg.Runner.RunArgs(ctx, argv, runner.Options{Dir: dir})
}

// exists treats any stat-able path as present. Presence is taken as proof
// of completion; a partially created target from an aborted earlier run
// will be skipped, not repaired.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
