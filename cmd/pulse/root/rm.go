package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pulsestudy/internal/ui"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := svc.ResolveTask(args[0])
			if err != nil {
				return err
			}
			task, _ := svc.Task(id)
			removed, err := svc.RemoveTask(ctx, id)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("task %s not found", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Deleted: ")+task.Title)
			return nil
		},
	}

	return cmd
}
