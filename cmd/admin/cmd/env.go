package cmd

import (
	"context"

	"github.com/bienestar-app/bienestar/internal/app"
	"github.com/bienestar-app/bienestar/internal/config"
	"github.com/bienestar-app/bienestar/internal/logger"
)

// openApp loads config from the environment and wires the full app,
// running pending migrations on the way.
func openApp(ctx context.Context) (*app.App, func(), error) {
	cfg := config.Load()
	flush := logger.Init(cfg.IsDevelopment(), cfg.SentryDSN, cfg.AppEnv)

	a, err := app.New(ctx, cfg)
	if err != nil {
		flush()
		return nil, nil, err
	}

	return a, func() {
		_ = a.Close()
		flush()
	}, nil
}
