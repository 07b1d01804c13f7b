// Package cli assembles the hallpass command tree. The `hook` subcommand is
// the installed entrypoint; everything else is operator tooling around it.
package cli

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/anthonysapien/hall-pass/internal/config"
	"github.com/anthonysapien/hall-pass/internal/policy"
)

func NewRoot(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hallpass",
		Short:         "hallpass: pre-execution authorization hook for coding assistants",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Version = version
	cmd.SetVersionTemplate("hallpass {{.Version}}\n")

	cmd.AddCommand(newHookCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newInstallCmd())
	cmd.AddCommand(newUninstallCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newAuditCmd())

	return cmd
}

// loadConfig reads the user config, tolerating a broken file: decisions must
// still be made, just with defaults.
func loadConfig(logger *slog.Logger) *config.Config {
	cfg, err := config.Load(config.Path())
	if err != nil {
		logger.Warn("config load failed, using defaults", "err", err)
	}
	return cfg
}

// buildEngine constructs the decision engine from the config snapshot plus
// the process home and working directory.
func buildEngine(cfg *config.Config) (*policy.Engine, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "/"
	}
	return policy.NewEngine(policy.Options{
		SafeCommands:      cfg.Commands.Safe,
		DBClients:         cfg.Commands.DBClients,
		ProtectedBranches: cfg.Git.ProtectedBranches,
		ProtectedPaths:    cfg.Paths.Protected,
		ReadOnlyPaths:     cfg.Paths.ReadOnly,
		NoDeletePaths:     cfg.Paths.NoDelete,
		Home:              home,
		Cwd:               cwd,
	})
}

// buildLogger returns a debug logger writing JSON lines to the state dir, or
// a discarding logger when debug is off. Stdout is never used: it belongs to
// the hook protocol.
func buildLogger(debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	path := filepath.Join(home, ".local", "state", "hall-pass", "debug.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
