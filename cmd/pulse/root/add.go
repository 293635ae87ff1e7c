package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pulsestudy/internal/engine"
	"pulsestudy/internal/ui"
)

func newAddCmd() *cobra.Command {
	var priority string
	var due string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if joinArgs(args) == "" {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := engine.ParsePriority(priority)
			if err != nil {
				return err
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			dueAt, err := engine.ParseDue(due, svc.Now())
			if err != nil {
				return err
			}
			task, ok, err := svc.AddTask(ctx, joinArgs(args), p, dueAt)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("title is required")
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconPlus, "Task added"))
			writeTaskLine(cmd.OutOrStdout(), task, svc.Now())
			return nil
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", string(engine.DefaultPriority), "Priority (low|medium|high)")
	cmd.Flags().StringVarP(&due, "due", "d", "", "Due date (today|tomorrow|weekend|nextweek|YYYY-MM-DD)")

	return cmd
}
