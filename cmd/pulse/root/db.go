package root

import (
	"context"
	"io"
	"log"

	"github.com/spf13/cobra"

	"pulsestudy/internal/config"
	"pulsestudy/internal/engine"
	"pulsestudy/internal/storage"
	"pulsestudy/internal/ui"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPathFlag != "" {
		cfg.DBPath = dbPathFlag
	}
	return cfg, nil
}

func dbPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return storage.DefaultDBPath()
}

func newLogger(cmd *cobra.Command) *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(cmd.ErrOrStderr(), "pulse: ", log.LstdFlags)
}

func openService(ctx context.Context, cmd *cobra.Command) (*engine.Service, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	path, err := dbPath(cfg)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}

	opts := append(cfg.ServiceOptions(), engine.WithLogger(newLogger(cmd)))
	svc, err := engine.NewService(ctx, storage.NewKV(db), opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	ui.ApplyTheme(svc.Theme())
	return svc, cleanup, nil
}
