// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/LiberTech01/facefusion-libero/internal/pinokio"
	"github.com/LiberTech01/facefusion-libero/internal/platform"
	"github.com/LiberTech01/facefusion-libero/internal/runner"
)

type (
	call struct {
		argv []string
		dir  string
	}

	// fakeRunner records invocations and simulates their filesystem
	// effects (the cloned checkout, the created venv) without spawning
	// processes.
	fakeRunner struct {
		calls  []call
		failOn string // fail any invocation whose display form contains this
	}
)

func (f *fakeRunner) RunArgs(_ context.Context, argv []string, opts runner.Options) error {
	f.calls = append(f.calls, call{argv: argv, dir: opts.Dir})

	joined := strings.Join(argv, " ")
	if f.failOn != "" && strings.Contains(joined, f.failOn) {
		return &runner.ExitCodeError{Code: 1, Cmd: joined}
	}

	switch {
	case len(argv) > 3 && argv[0] == "git" && argv[1] == "clone":
		_ = os.MkdirAll(argv[3], 0o755)
	case len(argv) > 2 && argv[1] == "-m" && argv[2] == "venv":
		_ = os.MkdirAll(argv[len(argv)-1], 0o755)
	}
	return nil
}

func (f *fakeRunner) RunShell(_ context.Context, script string, opts runner.Options) error {
	f.calls = append(f.calls, call{argv: []string{script}, dir: opts.Dir})
	return nil
}

func newTestSetup(t *testing.T, opts ...Option) (*Setup, *fakeRunner) {
	t.Helper()
	fake := &fakeRunner{}
	base := []Option{
		WithRunner(fake),
		WithLogger(log.New(io.Discard)),
		WithHostPython("python3"),
		WithFamily(platform.FamilyPosix),
	}
	return NewSetup(t.TempDir(), append(base, opts...)...), fake
}

func TestRunCleanRoot(t *testing.T) {
	s, fake := newTestSetup(t)
	cfg := s.Config()

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(fake.calls) != 4 {
		t.Fatalf("expected 4 invocations, got %d: %v", len(fake.calls), fake.calls)
	}

	clone := strings.Join(fake.calls[0].argv, " ")
	for _, want := range []string{"git clone", DefaultRepoURL, "--branch " + DefaultBranch, "--single-branch"} {
		if !strings.Contains(clone, want) {
			t.Errorf("clone invocation %q missing %q", clone, want)
		}
	}

	venv := strings.Join(fake.calls[1].argv, " ")
	if !strings.Contains(venv, "-m venv "+cfg.EnvDir) {
		t.Errorf("venv invocation = %q", venv)
	}

	pip := strings.Join(fake.calls[2].argv, " ")
	if !strings.Contains(pip, "-m pip install -U pip wheel setuptools") {
		t.Errorf("pip invocation = %q", pip)
	}
	if !strings.HasPrefix(fake.calls[2].argv[0], cfg.EnvDir) {
		t.Errorf("pip upgrade should use the venv interpreter, got %q", fake.calls[2].argv[0])
	}

	installer := fake.calls[3]
	if installer.dir != cfg.RepoDir {
		t.Errorf("installer working directory = %q, want %q", installer.dir, cfg.RepoDir)
	}
	joined := strings.Join(installer.argv, " ")
	for _, want := range []string{installerScript, "--onnxruntime default", "--skip-conda"} {
		if !strings.Contains(joined, want) {
			t.Errorf("installer invocation %q missing %q", joined, want)
		}
	}

	for _, name := range []string{pinokio.FileApp, pinokio.FileInstall, pinokio.FileStart, pinokio.FileSession} {
		if _, err := os.Stat(filepath.Join(cfg.RootDir, name)); err != nil {
			t.Errorf("descriptor %q not written: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(cfg.EnvDir, depsMarkerName)); err != nil {
		t.Errorf("install marker not written: %v", err)
	}
}

func TestSecondRunPerformsNoInvocations(t *testing.T) {
	s, fake := newTestSetup(t)
	cfg := s.Config()

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	descriptors := make(map[string][]byte)
	for _, name := range []string{pinokio.FileApp, pinokio.FileInstall, pinokio.FileStart, pinokio.FileSession} {
		data, err := os.ReadFile(filepath.Join(cfg.RootDir, name))
		if err != nil {
			t.Fatal(err)
		}
		descriptors[name] = data
	}

	fake.calls = nil
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if len(fake.calls) != 0 {
		t.Errorf("second run performed %d invocations: %v", len(fake.calls), fake.calls)
	}
	for name, want := range descriptors {
		got, err := os.ReadFile(filepath.Join(cfg.RootDir, name))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("descriptor %q changed on second run", name)
		}
	}
}

func TestExistingCheckoutSkipsClone(t *testing.T) {
	s, fake := newTestSetup(t)
	cfg := s.Config()

	if err := os.MkdirAll(cfg.RepoDir, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(fake.calls) != 3 {
		t.Fatalf("expected 3 invocations, got %d", len(fake.calls))
	}
	first := strings.Join(fake.calls[0].argv, " ")
	if strings.Contains(first, "git clone") {
		t.Errorf("clone should have been skipped, got %q", first)
	}
	if !strings.Contains(first, "-m venv") {
		t.Errorf("first invocation should create the venv, got %q", first)
	}
}

func TestVariantReachesInstaller(t *testing.T) {
	s, fake := newTestSetup(t, WithVariant("cuda"))

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	installer := strings.Join(fake.calls[len(fake.calls)-1].argv, " ")
	if !strings.Contains(installer, "--onnxruntime cuda") {
		t.Errorf("installer invocation = %q, want cuda variant", installer)
	}
}

func TestWindowsFamilyUsesScriptsLayout(t *testing.T) {
	s, fake := newTestSetup(t, WithFamily(platform.FamilyWindows))

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	pipPython := fake.calls[2].argv[0]
	if !strings.Contains(pipPython, "Scripts") || !strings.HasSuffix(pipPython, "python.exe") {
		t.Errorf("venv interpreter = %q, want Scripts layout", pipPython)
	}
}

func TestFailureAbortsSequence(t *testing.T) {
	s, fake := newTestSetup(t)
	fake.failOn = "-m venv"
	cfg := s.Config()

	err := s.Run(context.Background())
	if err == nil {
		t.Fatal("expected error from failing venv creation")
	}

	for _, c := range fake.calls {
		if strings.Contains(strings.Join(c.argv, " "), "-m pip") {
			t.Error("installer steps ran after a failed venv creation")
		}
	}
	if _, statErr := os.Stat(filepath.Join(cfg.RootDir, pinokio.FileSession)); statErr == nil {
		t.Error("descriptors written despite earlier failure")
	}
}

func TestDryRunTouchesNothing(t *testing.T) {
	s, fake := newTestSetup(t, WithDryRun(true))
	cfg := s.Config()

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(fake.calls) != 0 {
		t.Errorf("dry run dispatched %d invocations", len(fake.calls))
	}
	entries, err := os.ReadDir(cfg.RootDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run created %d entries in the root", len(entries))
	}
}

func TestDefaultConfigPaths(t *testing.T) {
	cfg := DefaultConfig(filepath.Join("some", "root"))

	if got, want := cfg.RepoDir, filepath.Join("some", "root", RepoDirName); got != want {
		t.Errorf("RepoDir = %q, want %q", got, want)
	}
	if got, want := cfg.EnvDir, filepath.Join("some", "root", EnvDirName); got != want {
		t.Errorf("EnvDir = %q, want %q", got, want)
	}
	if cfg.RepoURL != DefaultRepoURL || cfg.Branch != DefaultBranch {
		t.Errorf("upstream = %q@%q", cfg.RepoURL, cfg.Branch)
	}
	if cfg.Variant != "default" {
		t.Errorf("Variant = %q, want default", cfg.Variant)
	}
	if cfg.HostPython == "" {
		t.Error("HostPython should never be empty")
	}
}
