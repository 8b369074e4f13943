package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "hotel_app/internal/adapters/http_server"
	"hotel_app/internal/adapters/observability"
	redisad "hotel_app/internal/adapters/redis"
	"hotel_app/internal/app"
	"hotel_app/internal/domain"
	"hotel_app/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// deps
	var cache domain.Cache = app.NopCache{}
	var redisUp bool
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rc.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable; serving uncached")
		} else {
			log.Info().Str("addr", cfg.RedisAddr).Msg("redis connection ok")
			redisUp = true
		}
		defer rc.Close()
		cache = rc
	}
	pages := app.NewPageService(domain.DefaultPageConfig(), cache, cfg.CacheTTL)

	// views cached by a previous deploy may carry other page texts
	if redisUp {
		if err := pages.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Msg("page cache invalidation failed")
		} else {
			log.Info().Msg("page cache invalidated")
		}
	}

	// http
	srv := server.New(server.Options{
		Timeout:    cfg.RequestTimeout,
		RateRPS:    cfg.RateLimitRPS,
		RateBurst:  cfg.RateLimitBurst,
		TrustProxy: cfg.TrustProxy,
	})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Pages: pages})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("page server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error { return observability.Serve(gctx, cfg.MetricsAddr, reg) })
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("server stopped")
}
