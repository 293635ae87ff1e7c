package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pulsestudy/internal/engine"
	"pulsestudy/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show XP, rank, AI rating and today's progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			snap := svc.Snapshot()
			out := cmd.OutOrStdout()

			title := "Dashboard"
			if name := svc.UserName(); name != "" {
				title = "Welcome back, " + name
			}
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, title))
			fmt.Fprintln(out, ui.LabelValue("Rank", ui.RankBadge(snap.Rank)))
			if snap.NextRank != nil {
				fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d %s", snap.XP, ui.Muted.Render(fmt.Sprintf("(%d to %s)", snap.XPToNext, snap.NextRank.Name)))))
			} else {
				fmt.Fprintln(out, ui.LabelValue("XP", snap.XP))
			}
			fmt.Fprintln(out, ui.LabelValue("Rank progress", ui.ProgressBar(int(engine.RankProgress(snap.XP)*100), 100, 20)))
			fmt.Fprintln(out, ui.LabelValue("AI rating", ui.Gold.Render(fmt.Sprint(snap.Rating))))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Stats"))
			fmt.Fprintf(out, "- %s %d/%d\n", ui.Key.Render("Tasks completed:"), snap.CompletedTasks, snap.TotalTasks)
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Focus minutes:"), snap.FocusMinutes)
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Notes:"), snap.Notes)
			fmt.Fprintf(out, "- %s %s %d/%d\n", ui.Key.Render("Sessions today:"), ui.ProgressBar(snap.Session.Completed, snap.Session.Total, 12), snap.Session.Completed, snap.Session.Total)
			return nil
		},
	}

	return cmd
}
