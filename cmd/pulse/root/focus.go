package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pulsestudy/internal/engine"
	"pulsestudy/internal/ui"
)

func newFocusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Pomodoro focus timer",
	}
	cmd.AddCommand(
		newFocusStartCmd(),
		newFocusStatusCmd(),
		newFocusDurationCmd(),
		newFocusHistoryCmd(),
	)
	return cmd
}

func newFocusStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Run a focus session in the foreground (Ctrl+C pauses)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, cleanup, err := openService(context.Background(), cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := svc.FocusStart(ctx); err != nil {
				return err
			}
			return runFocus(ctx, svc, cmd.OutOrStdout(), time.Second)
		},
	}
}

// runFocus ticks the service until the session completes or ctx is cancelled,
// in which case the session is paused.
func runFocus(ctx context.Context, svc *engine.Service, out io.Writer, interval time.Duration) error {
	st := svc.FocusState()
	fmt.Fprintln(out, ui.Heading(ui.IconFocus, fmt.Sprintf("Focus %d min", st.Duration)))
	printClock(out, st.SecondsLeft)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			// The caller's context is gone; persist the pause regardless.
			recorded, err := svc.FocusPause(context.Background())
			if err != nil {
				return err
			}
			left := svc.FocusState().SecondsLeft
			msg := "Paused at " + ui.Clock(left)
			if recorded != nil {
				msg += fmt.Sprintf(" (%s logged)", recorded.Duration().Round(time.Second))
			}
			fmt.Fprintln(out, ui.Warn.Render(msg))
			return nil
		case <-ticker.C:
			res, err := svc.FocusTick(context.Background())
			if err != nil {
				return err
			}
			if c := res.Completion; c != nil {
				printClock(out, 0)
				fmt.Fprintln(out)
				fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Session complete!"))
				fmt.Fprintln(out, ui.Gold.Render(fmt.Sprintf("%s +%d XP", ui.IconSparkle, c.XP)))
				fmt.Fprintln(out, ui.LabelValue("Today", fmt.Sprintf("%d/%d", c.Session.Completed, c.Session.Total)))
				return nil
			}
			if !res.Ticked {
				return errors.New("focus timer stopped")
			}
			printClock(out, res.SecondsLeft)
		}
	}
}

func printClock(out io.Writer, secondsLeft int) {
	fmt.Fprintf(out, "\r%s %s", ui.IconFocus, ui.Key.Render(ui.Clock(secondsLeft)))
}

func newFocusStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's focus progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			st := svc.FocusState()
			p := svc.Progress()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconFocus, "Focus"))
			fmt.Fprintln(out, ui.LabelValue("Session length", fmt.Sprintf("%d min", st.Duration)))
			fmt.Fprintln(out, ui.LabelValue("Today", fmt.Sprintf("%s %d/%d", ui.ProgressBar(st.Session.Completed, st.Session.Total, 12), st.Session.Completed, st.Session.Total)))
			fmt.Fprintln(out, ui.LabelValue("Focus minutes", p.FocusMinutes))
			return nil
		},
	}
}

func newFocusDurationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duration <minutes>",
		Short: fmt.Sprintf("Set the session length (1-%d minutes)", engine.MaxFocusMinutes),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.New("minutes must be an integer")
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ok, err := svc.FocusDuration(ctx, minutes)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("duration must be between 1 and %d minutes", engine.MaxFocusMinutes)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Session length", fmt.Sprintf("%d min", minutes)))
			return nil
		},
	}
}

func newFocusHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded focus sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			history := engine.RecentHistory(svc.FocusHistory(), limit)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconFocus, "Focus history"))
			if len(history) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nothing recorded yet."))
				return nil
			}
			for _, h := range history {
				fmt.Fprintf(out, "- %s %s-%s %s\n", h.Date, h.Start.Format("15:04"), h.End.Format("15:04"), ui.Muted.Render(h.Duration().Round(time.Second).String()))
			}
			fmt.Fprintln(out, ui.LabelValue("Total", engine.TotalFocus(history).Round(time.Minute)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Most recent sessions to show")

	return cmd
}
