package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pulsestudy/internal/engine"
	"pulsestudy/internal/ui"
)

func newListCmd() *cobra.Command {
	var status string
	var priorities []string
	var sortBy string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := engine.DefaultFilter()
			st, err := engine.ParseStatusFilter(status)
			if err != nil {
				return err
			}
			filter.Status = st
			if len(priorities) > 0 {
				filter.Priorities = filter.Priorities[:0]
				for _, raw := range priorities {
					p, err := engine.ParsePriority(raw)
					if err != nil {
						return err
					}
					filter.Priorities = append(filter.Priorities, p)
				}
			}
			by, err := engine.ParseSortBy(sortBy)
			if err != nil {
				return err
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks := svc.Tasks(filter, by)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTask, "Tasks"))
			if len(tasks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No tasks match."))
				return nil
			}
			now := svc.Now()
			for _, t := range tasks {
				writeTaskLine(out, t, now)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "all", "Status filter (all|pending|done)")
	cmd.Flags().StringSliceVarP(&priorities, "priority", "p", nil, "Only these priorities (repeatable)")
	cmd.Flags().StringVar(&sortBy, "sort", "created", "Sort key (created|priority|due)")

	return cmd
}
