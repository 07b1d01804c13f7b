package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anthonysapien/hall-pass/pkg/types"
)

// newCheckCmd evaluates a command string from the argument list and prints
// the verdict. Exit codes mirror the decision so the command is scriptable:
// 0 allow, 1 ask, 2 pass.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check COMMAND...",
		Short: "Evaluate a shell command and print the verdict",
		Args:  cobra.MinimumNArgs(1),
		// Everything after "check" is the command under evaluation, flags
		// included (ls -la, git push --force).
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := buildLogger(false)
			cfg := loadConfig(logger)
			engine, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			d := engine.EvalCommand(strings.Join(args, " "))
			fmt.Fprintf(cmd.OutOrStdout(), "%s", d.Verdict)
			if d.Reason != "" {
				fmt.Fprintf(cmd.OutOrStdout(), ": %s", d.Reason)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			if d.Guidance != "" {
				fmt.Fprintln(cmd.OutOrStdout(), d.Guidance)
			}

			switch d.Verdict {
			case types.VerdictAllow:
				return nil
			case types.VerdictAsk:
				return &ExitError{code: 1}
			default:
				return &ExitError{code: 2}
			}
		},
	}
}
