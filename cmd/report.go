package cmd

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reportCmd = &cobra.Command{
	Use:   "report <session-id>",
	Short: "Print the final report of a finished interview",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		a := newApplication(ctx)
		defer a.close()
		a.requireOwner()

		report, err := a.service.GetReport(ctx, a.owner, args[0])
		if err != nil {
			a.logger.Fatal("getting report", zap.Error(err), zap.String("session_id", args[0]))
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			// do not bother error since the report is a plain struct
			pretty, _ := json.MarshalIndent(report, "", "  ")
			cmd.Println(string(pretty))
			return
		}
		printReport(cmd.OutOrStdout(), report)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
