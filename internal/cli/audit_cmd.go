package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anthonysapien/hall-pass/internal/audit"
)

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the audit trail",
	}

	var n int
	tail := &cobra.Command{
		Use:   "tail",
		Short: "Print the most recent audit records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig(buildLogger(false))
			path := cfg.AuditPath()

			var (
				records []audit.Record
				err     error
			)
			if audit.IsSQLitePath(path) {
				store, openErr := audit.OpenSQLite(path)
				if openErr != nil {
					return openErr
				}
				defer store.Close()
				records, err = store.Tail(n)
			} else {
				records, err = audit.ReadTail(path, n)
			}
			if err != nil {
				return err
			}

			for _, r := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-8s  %-5s  %s\n", r.TS, r.Decision, r.Tool, r.Input)
				if r.Reason != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%*s%s (%s)\n", 22, "", r.Reason, r.Layer)
				}
			}
			return nil
		},
	}
	tail.Flags().IntVarP(&n, "lines", "n", 20, "number of records to show")
	cmd.AddCommand(tail)
	return cmd
}
