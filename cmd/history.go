package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past interviews, newest first",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()

		a := newApplication(ctx)
		defer a.close()
		a.requireOwner()

		sessions, err := a.service.History(ctx, a.owner)
		if err != nil {
			a.logger.Fatal("listing interviews", zap.Error(err))
		}

		if len(sessions) == 0 {
			a.logger.Info("no interviews yet", zap.String("owner", a.owner))
			return
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tCOMPANY\tROLE\tLEVEL\tSTATUS")
		for _, s := range sessions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				s.ID,
				s.CreatedAt.Local().Format(time.DateTime),
				dash(s.Company),
				dash(s.Role),
				dash(s.ExperienceLevel),
				describeSession(s),
			)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func dash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
