package cmd

import (
	"github.com/spf13/cobra"
)

func runCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch the running auctions once and print the summary",
		Long: "Logs in to the marketplace, fetches the buyer's running auctions,\n" +
			"and prints the auction count, average bids, and average progress.\n" +
			"Exits non-zero when authentication or the upstream call fails.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			shutdown, err := setupTelemetry(ctx, cfg)
			if err != nil {
				return err
			}
			defer flushTelemetry(ctx, shutdown)

			mon := buildMonitor(cfg, appLog)
			s, err := mon.RunOnce(ctx)
			if err != nil {
				return err
			}

			if output == "json" {
				return printSummaryJSON(cmd.OutOrStdout(), s)
			}
			return printSummaryTable(cmd.OutOrStdout(), s)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format (table, json)")
	return cmd
}
