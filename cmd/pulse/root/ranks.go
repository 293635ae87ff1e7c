package root

import (
	"context"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"pulsestudy/internal/engine"
	"pulsestudy/internal/ui"
)

func newRanksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ranks",
		Short: "Show the rank ladder",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			current := engine.RankFor(svc.Progress().XP)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Ranks"))
			for _, r := range engine.Ranks {
				span := fmt.Sprintf("%d-%d XP", r.Min, r.Max)
				if r.Max == math.MaxInt {
					span = fmt.Sprintf("%d+ XP", r.Min)
				}
				marker := "  "
				if r.Name == current.Name {
					marker = ui.Good.Render("➜ ")
				}
				line := fmt.Sprintf("%s%s %s", marker, ui.RankBadge(r), ui.Muted.Render(span))
				if r.Description != "" {
					line += " " + ui.Muted.Render(r.Description)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
