package root

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pulsestudy/internal/ui"
)

func newPlanCmd() *cobra.Command {
	var timezone, availability, goals, day string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a weekly study plan with the AI planner",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(goals) == "" {
				return errors.New("--goals is required")
			}
			if timezone == "" {
				timezone = localZone()
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Muted.Render("Generating your plan..."))
			plan, err := svc.Plan(ctx, timezone, availability, goals, day)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, ui.Heading(ui.IconBrain, "Your weekly plan"))
			start := day
			if start == "" {
				start = svc.Now().Weekday().String()
			}
			for _, d := range plan.Days(start) {
				fmt.Fprintln(out, ui.H2.Render(d.Name))
				if d.Rest() {
					fmt.Fprintln(out, ui.Muted.Render("  Rest day"))
					continue
				}
				for _, s := range d.Slots {
					fmt.Fprintf(out, "  %s %s\n", ui.Key.Render(s.Time), s.Activity)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone (default: local)")
	cmd.Flags().StringVarP(&availability, "availability", "a", "", "When you can study, e.g. \"weekday evenings, Saturday morning\"")
	cmd.Flags().StringVarP(&goals, "goals", "g", "", "What you want to achieve this week")
	cmd.Flags().StringVar(&day, "day", "", "First day of the plan (default: today)")

	return cmd
}

func localZone() string {
	if name := time.Local.String(); name != "" && name != "Local" {
		return name
	}
	name, _ := time.Now().Zone()
	return name
}
