// SPDX-License-Identifier: MPL-2.0

package provision

import "context"

// EnsureEnv guarantees the Python virtual environment exists. The
// launcher treats the env directory itself as the installed marker, so
// its mere presence short-circuits creation.
func (s *Setup) EnsureEnv(ctx context.Context) error {
	if exists(s.cfg.EnvDir) {
		s.cfg.Logger.Info("virtual environment already present, skipping", "dir", s.cfg.EnvDir)
		return nil
	}

	s.cfg.Logger.Info("creating virtual environment", "dir", s.cfg.EnvDir)
	return s.run(ctx, []string{s.cfg.HostPython, "-m", "venv", s.cfg.EnvDir}, "")
}
