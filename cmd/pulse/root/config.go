package root

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pulsestudy/internal/config"
	"pulsestudy/internal/storage"
	"pulsestudy/internal/ui"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd(), newConfigPathCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var project, force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.GlobalConfigPath()
			if project {
				path = config.ProjectConfigPath()
			}
			if path == "" {
				return errors.New("cannot determine config path")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Wrote ")+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&project, "project", false, "Write ./.pulse/config.yaml instead of the global file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.AI.APIKey != "" {
				cfg.AI.APIKey = "********"
			}
			body, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(body)
			return err
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config files (lowest precedence first) and the database in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, p := range []string{config.GlobalConfigPath(), config.ProjectConfigPath()} {
				state := ui.Muted.Render("(missing)")
				if _, err := os.Stat(p); err == nil {
					state = ui.Good.Render("(found)")
				}
				fmt.Fprintln(out, p+" "+state)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path, err := dbPath(cfg)
			if err != nil {
				return err
			}
			ctx := context.Background()
			db, err := storage.Open(ctx, path)
			if err != nil {
				return err
			}
			defer db.Close()

			keys, err := storage.NewKV(db).Keys(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.LabelValue("Database", path))
			fmt.Fprintln(out, ui.LabelValue("Stored", strings.Join(keys, ", ")))
			return nil
		},
	}
}
