package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pribylovaa/go-portfolio-showcase/internal/animation"
	"github.com/pribylovaa/go-portfolio-showcase/internal/cache"
	"github.com/pribylovaa/go-portfolio-showcase/internal/config"
	showhttp "github.com/pribylovaa/go-portfolio-showcase/internal/http"
	"github.com/pribylovaa/go-portfolio-showcase/internal/http/handlers"
	"github.com/pribylovaa/go-portfolio-showcase/internal/metrics"
	"github.com/pribylovaa/go-portfolio-showcase/internal/render"
	"github.com/pribylovaa/go-portfolio-showcase/internal/scene"
	"github.com/pribylovaa/go-portfolio-showcase/internal/service"
	"github.com/pribylovaa/go-portfolio-showcase/internal/sources/chain"
	"github.com/pribylovaa/go-portfolio-showcase/internal/storage/postgres"
	logctx "github.com/pribylovaa/go-portfolio-showcase/pkg/log"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	// .env необязателен: в контейнере переменные приходят из окружения.
	_ = godotenv.Load()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting showcase-service", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()
	rootCtx = logctx.Into(rootCtx, log)

	m := metrics.New(nil)
	opts := []service.Option{service.WithMetrics(m)}
	checks := map[string]showhttp.Check{}

	if cfg.DB.URL != "" {
		dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
		store, err := postgres.New(dbCtx, cfg.DB.URL)
		dbCancel()
		if err != nil {
			log.Error("postgres_connect_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		defer store.Close()

		opts = append(opts, service.WithContactStorage(store))
		checks["postgres"] = store.Ping
		log.Info("postgres_connected")
	} else {
		log.Warn("postgres_disabled", slog.String("reason", "db.url is empty"))
	}

	if cfg.Redis.URL != "" {
		limiter, err := cache.NewRedisLimiter(cfg.Redis.URL, cfg.Redis.Prefix, cfg.Contact.Limit, cfg.Contact.Window)
		if err != nil {
			log.Error("redis_connect_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if cerr := limiter.Close(); cerr != nil {
				log.Warn("redis_close_failed", slog.String("err", cerr.Error()))
			}
		}()

		opts = append(opts, service.WithLimiter(limiter))
		checks["redis"] = limiter.Ping
		log.Info("redis_connected")
	}

	srcs, err := chain.Build(rootCtx, *cfg, nil)
	if err != nil {
		log.Error("sources_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	svc := service.New(*cfg, srcs, opts...)
	log.Info("service_initialized", slog.Any("sources", svc.Sources()))

	rnd, err := render.New()
	if err != nil {
		log.Error("render_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	hero := scene.NewHero(scene.Options{
		Planets:   cfg.Scene.Planets,
		Particles: cfg.Scene.Particles,
		Seed:      cfg.Scene.Seed,
	})

	anim, err := animation.Start(rootCtx, cfg.Scene.FPS, hero.Advance)
	if err != nil {
		log.Error("animation_start_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer anim.Stop()

	box := scene.NewBox(scene.BoxOptions{ImageURL: cfg.Scene.BoxImage})

	boxAnim, err := animation.Start(rootCtx, cfg.Scene.FPS, box.Advance)
	if err != nil {
		log.Error("animation_start_failed", slog.String("scene", "box"), slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer boxAnim.Stop()

	var ready atomic.Bool

	router := showhttp.NewRouter(handlers.New(svc, rnd, hero, box), showhttp.Options{
		Logger:  log,
		Timeout: cfg.Timeouts.Request,
		Metrics: m,
		Ready:   &ready,
		Checks:  checks,
	})

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	ready.Store(true)
	log.Info("showcase_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	ready.Store(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	anim.Stop()
	boxAnim.Stop()
	log.Info("animation_stopped",
		slog.Uint64("hero_frames", anim.Frames()),
		slog.Uint64("box_frames", boxAnim.Frames()),
	)

	log.Info("service_stopped")
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
