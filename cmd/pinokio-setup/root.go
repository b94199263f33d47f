// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/LiberTech01/facefusion-libero/internal/config"
	"github.com/LiberTech01/facefusion-libero/internal/provision"
	"github.com/LiberTech01/facefusion-libero/internal/runner"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// variant selects the onnxruntime acceleration backend
	variant string
	// rootDirFlag overrides the provisioning root
	rootDirFlag string
	// verbose enables debug-level status output
	verbose bool
	// dryRun prints the invocations without executing them
	dryRun bool

	// rootCmd is the whole CLI: one command, no subcommands.
	rootCmd = &cobra.Command{
		Use:   "pinokio-setup",
		Short: "Prepare FaceFusion to run under the Pinokio launcher",
		Long: TitleStyle.Render("pinokio-setup") + SubtitleStyle.Render(" - FaceFusion bootstrap for Pinokio") + `

pinokio-setup provisions everything Pinokio needs to treat this
repository as an installed application:

  1. Clone FaceFusion ` + provision.DefaultBranch + ` into ./facefusion
  2. Create a Python virtual environment in ./env
  3. Upgrade pip, wheel and setuptools inside the environment
  4. Run FaceFusion's own installer (--onnxruntime <variant>)
  5. Emit pinokio.js, install.json, start.json and session.json

Every step is skipped when its target already exists, so re-running
the tool is safe. Paths resolve relative to the executable's own
location unless --root is given.`,
		Args: cobra.NoArgs,
		RunE: runSetup,
	}
)

func init() {
	rootCmd.Flags().StringVar(&variant, "variant", "",
		"onnxruntime backend ("+strings.Join(config.Variants, "|")+")")
	rootCmd.Flags().StringVar(&rootDirFlag, "root", "",
		"provisioning root (default: the executable's directory)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print invocations without executing")
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

func runSetup(c *cobra.Command, _ []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	if c.Flags().Changed("variant") {
		if err := config.ValidateVariant(variant); err != nil {
			return err
		}
		cfg.Variant = variant
	}
	if verbose {
		cfg.Verbose = true
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "setup"})
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	setup := provision.NewSetup(root,
		provision.WithVariant(cfg.Variant),
		provision.WithRunner(runner.New(logger)),
		provision.WithLogger(logger),
		provision.WithDryRun(dryRun),
	)

	if err := setup.Run(c.Context()); err != nil {
		var exitErr *runner.ExitCodeError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: int(exitErr.Code), Err: err}
		}
		return err
	}

	out := c.OutOrStdout()
	fmt.Fprintln(out, SuccessStyle.Render("Setup complete."))
	fmt.Fprintln(out, "Open Pinokio, import this repository, and press Start.")
	return nil
}

// resolveRoot picks the provisioning root: the --root flag when given,
// otherwise the directory holding this executable, so the tool works no
// matter where it is invoked from.
func resolveRoot() (string, error) {
	if rootDirFlag != "" {
		return filepath.Abs(rootDirFlag)
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	return filepath.Dir(exe), nil
}
