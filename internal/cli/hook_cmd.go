package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/anthonysapien/hall-pass/internal/audit"
	"github.com/anthonysapien/hall-pass/internal/hook"
)

func newHookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hook",
		Short: "Run one PreToolUse decision over stdin/stdout (invoked by the host)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := buildLogger(os.Getenv("HALL_PASS_DEBUG") == "1")
			cfg := loadConfig(logger)
			if cfg.Debug.Enabled {
				logger = buildLogger(true)
			}

			engine, err := buildEngine(cfg)
			if err != nil {
				// An unusable engine means we cannot vouch for anything;
				// fail the envelope rather than guessing.
				logger.Error("engine construction failed", "err", err)
				return &ExitError{code: 1, message: "hallpass: " + err.Error()}
			}

			sink := audit.Open(cfg.Audit.Enabled, cfg.AuditPath())
			defer sink.Close()

			runner := &hook.Runner{Engine: engine, Audit: sink, Log: logger}
			if code := runner.Run(cmd.InOrStdin(), cmd.OutOrStdout()); code != 0 {
				return &ExitError{code: code}
			}
			return nil
		},
	}
}
