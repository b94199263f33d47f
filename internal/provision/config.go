// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/LiberTech01/facefusion-libero/internal/platform"
	"github.com/LiberTech01/facefusion-libero/internal/runner"
)

// Fixed upstream facts. The clone is pinned to a single release branch so
// every run provisions the same revision.
const (
	// DefaultRepoURL is the upstream FaceFusion repository.
	DefaultRepoURL = "https://github.com/facefusion/facefusion"
	// DefaultBranch is the pinned release branch.
	DefaultBranch = "3.2.0"

	// RepoDirName is the checkout directory under the root.
	RepoDirName = "facefusion"
	// EnvDirName is the virtual environment directory under the root.
	// The launcher recognizes this name as the app's execution environment.
	EnvDirName = "env"

	// installerScript is FaceFusion's own installer inside the checkout.
	installerScript = "install.py"

	// depsMarkerName is written into the venv after the installer finishes,
	// so a later run can tell a completed install from a partial one.
	depsMarkerName = ".deps-installed"
)

type (
	// Config holds everything a Setup run needs. All paths are absolute;
	// nothing is read from ambient state once the Config is built.
	Config struct {
		// RootDir is the directory the app is provisioned into.
		RootDir string
		// RepoDir is the FaceFusion checkout (default <root>/facefusion).
		RepoDir string
		// EnvDir is the virtual environment (default <root>/env).
		EnvDir string
		// RepoURL and Branch pin the upstream revision.
		RepoURL string
		Branch  string
		// Variant selects the onnxruntime backend for the installer.
		Variant string
		// HostPython creates the venv; defaults to the first interpreter
		// found on PATH.
		HostPython string
		// Family selects the venv executable layout; defaults to the host.
		Family platform.Family
		// DryRun logs the invocations without executing or writing anything.
		DryRun bool
		// Runner executes the external processes.
		Runner runner.Runner
		// Logger receives per-step status lines.
		Logger *log.Logger
	}

	// Option is a functional option for configuring a Config.
	Option func(*Config)
)

// DefaultConfig returns a Config rooted at rootDir with the pinned
// upstream defaults.
func DefaultConfig(rootDir string) *Config {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "setup"})

	return &Config{
		RootDir:    rootDir,
		RepoDir:    filepath.Join(rootDir, RepoDirName),
		EnvDir:     filepath.Join(rootDir, EnvDirName),
		RepoURL:    DefaultRepoURL,
		Branch:     DefaultBranch,
		Variant:    "default",
		HostPython: defaultHostPython(),
		Family:     platform.CurrentFamily(),
		Runner:     runner.New(logger),
		Logger:     logger,
	}
}

// Apply applies the given options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// WithVariant sets the onnxruntime backend variant.
func WithVariant(variant string) Option {
	return func(c *Config) { c.Variant = variant }
}

// WithRunner sets the process runner.
func WithRunner(r runner.Runner) Option {
	return func(c *Config) { c.Runner = r }
}

// WithLogger sets the status logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithDryRun toggles dry-run mode.
func WithDryRun(dryRun bool) Option {
	return func(c *Config) { c.DryRun = dryRun }
}

// WithHostPython sets the interpreter used to create the venv.
func WithHostPython(path string) Option {
	return func(c *Config) { c.HostPython = path }
}

// WithFamily overrides the host OS family used for venv path resolution.
func WithFamily(f platform.Family) Option {
	return func(c *Config) { c.Family = f }
}

// WithUpstream overrides the clone source. The defaults pin the supported
// release; overriding is for tests and mirrors.
func WithUpstream(url, branch string) Option {
	return func(c *Config) {
		c.RepoURL = url
		c.Branch = branch
	}
}

// defaultHostPython finds an interpreter to create the venv with. The
// bare name is kept as a last resort so the eventual invocation error
// names the missing program.
func defaultHostPython() string {
	names := []string{"python3", "python"}
	if platform.CurrentFamily() == platform.FamilyWindows {
		names = []string{"python", "python3"}
	}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return names[0]
}
