package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pulsestudy/internal/ui"
)

func newStatsCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show daily focus minutes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				days = 1
			}
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			series := svc.DailyFocus(days)
			peak := 1
			for _, d := range series {
				peak = max(peak, d.Minutes)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCal, fmt.Sprintf("Focus, last %d days", days)))
			for _, d := range series {
				fmt.Fprintf(out, "%s %s %s\n", d.Date, ui.ProgressBar(d.Minutes, peak, 20), ui.Muted.Render(fmt.Sprintf("%d min / %d sessions", d.Minutes, d.Sessions)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", 7, "Number of days")

	return cmd
}
