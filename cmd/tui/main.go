package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hotel_app/internal/adapters/observability"
	"hotel_app/internal/adapters/tui"
	"hotel_app/internal/app"
	"hotel_app/internal/domain"
	"hotel_app/internal/shared"
)

func main() {
	cfg := shared.Load()

	// the terminal belongs to the UI; only warnings and up go to stderr
	log.Logger = observability.NewLoggerTo(os.Stderr, cfg.AppEnv).Level(zerolog.WarnLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	pages := app.NewPageService(domain.DefaultPageConfig(), app.NopCache{}, cfg.CacheTTL)
	if err := tui.Run(ctx, pages); err != nil {
		log.Fatal().Err(err).Msg("terminal UI failed")
	}
}
