// SPDX-License-Identifier: MPL-2.0

package provision

import "context"

// EnsureRepo guarantees the FaceFusion checkout exists. An existing
// directory is assumed to be a complete clone and left untouched;
// otherwise the pinned release branch is cloned with single-branch
// history.
func (s *Setup) EnsureRepo(ctx context.Context) error {
	if exists(s.cfg.RepoDir) {
		s.cfg.Logger.Info("checkout already present, skipping clone", "dir", s.cfg.RepoDir)
		return nil
	}

	s.cfg.Logger.Info("cloning facefusion", "branch", s.cfg.Branch, "dir", s.cfg.RepoDir)
	return s.run(ctx, []string{
		"git", "clone", s.cfg.RepoURL, s.cfg.RepoDir,
		"--branch", s.cfg.Branch,
		"--single-branch",
	}, "")
}
