package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pulsestudy/internal/engine"
	"pulsestudy/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Toggle a task done/pending (completions are reviewed before XP is awarded)",
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
			res, err := svc.ToggleTask(ctx, id)
			if err != nil {
				return err
			}
			if !res.Found {
				return fmt.Errorf("task %s not found", args[0])
			}

			out := cmd.OutOrStdout()
			if !res.Completed {
				fmt.Fprintln(out, ui.Muted.Render("Reopened: ")+res.Task.Title)
				return nil
			}
			fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Completed: ")+res.Task.Title)
			fmt.Fprintln(out, ui.Muted.Render("Reviewing completion..."))

			v, awarded, err := svc.Moderate(ctx, *res.Review)
			if err != nil {
				return err
			}
			if awarded {
				fmt.Fprintln(out, ui.Gold.Render(fmt.Sprintf("%s +%d XP ", ui.IconSparkle, engine.TaskCompletionXP))+ui.Muted.Render(v.Reason))
			} else {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" No XP ")+ui.Muted.Render(v.Reason))
			}
			return nil
		},
	}

	return cmd
}
