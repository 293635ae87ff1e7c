package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pulsestudy/internal/engine"
	"pulsestudy/internal/ui"
)

func newProfileCmd() *cobra.Command {
	var name, theme string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change the display name and theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if cmd.Flags().Changed("name") {
				if err := svc.SetUserName(ctx, name); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("theme") {
				t, err := engine.ParseTheme(theme)
				if err != nil {
					return err
				}
				if err := svc.SetTheme(ctx, t); err != nil {
					return err
				}
				ui.ApplyTheme(t)
			}

			out := cmd.OutOrStdout()
			display := svc.UserName()
			if display == "" {
				display = ui.Muted.Render("(not set)")
			}
			fmt.Fprintln(out, ui.Heading(ui.IconInfo, "Profile"))
			fmt.Fprintln(out, ui.LabelValue("Name", display))
			fmt.Fprintln(out, ui.LabelValue("Theme", svc.Theme()))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&theme, "theme", "", "Theme (light|dark)")

	return cmd
}
