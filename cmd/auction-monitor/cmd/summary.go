package cmd

import (
	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/auction-monitor/internal/api/client"
)

const defaultServer = "http://localhost:8080"

func summaryCommand() *cobra.Command {
	var (
		server  string
		output  string
		trigger bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the summary held by a running watch process",
		Long: "Queries the /api/v1 endpoints of a running 'auction-monitor watch'.\n" +
			"With --trigger the watch process fetches the listing first.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := apiclient.New(server)

			var (
				s   *apiclient.Summary
				err error
			)
			if trigger {
				s, err = c.TriggerRun(cmd.Context())
			} else {
				s, err = c.Summary(cmd.Context())
			}
			if err != nil {
				return err
			}

			if output == "json" {
				return printSummaryJSON(cmd.OutOrStdout(), s)
			}
			if err := printSummaryTable(cmd.OutOrStdout(), &s.Summary); err != nil {
				return err
			}
			if s.LastError != "" {
				appLog.Warn("latest run failed, showing previous summary", "error", s.LastError)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", defaultServer, "watch API URL")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format (table, json)")
	cmd.Flags().BoolVar(&trigger, "trigger", false, "trigger a run before printing")
	return cmd
}
