package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pulsestudy/internal/ui"
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal <inc|dec> [n]",
		Short: "Raise or lower today's focus session goal",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("usage: goal <inc|dec> [n]")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			n := 1
			if len(args) == 2 {
				v, err := strconv.Atoi(args[1])
				if err != nil || v < 1 {
					return errors.New("n must be a positive integer")
				}
				n = v
			}
			var delta int
			switch args[0] {
			case "inc", "+", "up":
				delta = n
			case "dec", "down":
				delta = -n
			default:
				return fmt.Errorf("unknown goal direction %q (want inc|dec)", args[0])
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			session, err := svc.FocusGoal(ctx, delta)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Today's goal", fmt.Sprintf("%d/%d sessions", session.Completed, session.Total)))
			return nil
		},
	}

	return cmd
}
