package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pulsestudy/internal/engine"
)

func newPrioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prio <id> <low|medium|high>",
		Short: "Change a task's priority",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and priority are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := engine.ParsePriority(args[1])
			if err != nil {
				return err
			}

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
			ok, err := svc.SetTaskPriority(ctx, id, p)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("task %s not found", args[0])
			}
			task, _ := svc.Task(id)
			writeTaskLine(cmd.OutOrStdout(), task, svc.Now())
			return nil
		},
	}

	return cmd
}
