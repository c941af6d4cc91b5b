package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/go-portfolio-showcase/internal/http/handlers"
	"github.com/pribylovaa/go-portfolio-showcase/internal/http/middleware"
	"github.com/pribylovaa/go-portfolio-showcase/internal/metrics"
)

// Check — проверка готовности зависимости (Postgres, Redis).
type Check func(ctx context.Context) error

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	Metrics *metrics.Metrics
	// Gatherer — откуда /metrics берёт метрики; nil — глобальный реестр.
	Gatherer prometheus.Gatherer
	// Ready — флаг готовности процесса; nil считается «готов».
	Ready *atomic.Bool
	// Checks выполняются на каждый /healthz.
	Checks map[string]Check
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(h *handlers.Handlers, opts Options) http.Handler {
	root := chi.NewRouter()

	// Служебные эндпойнты живут вне логирования и общего дедлайна.
	root.Get("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	root.Get("/healthz", healthz(opts))
	root.Handle("/metrics", metricsHandler(opts.Gatherer))

	root.Group(func(r chi.Router) {
		// Middleware (внешний -> внутренний).
		r.Use(
			middleware.Recover(),
			middleware.RequestID(), // до логирования: id попадает в attrs
			middleware.AccessLog(opts.Logger),
			middleware.Metrics(opts.Metrics),
			middleware.Deadline(opts.Timeout), // общий дедлайн цепочки источников
		)

		registerRoutes(r, h)
	})

	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// videos
	r.Get("/widget/videos", h.WidgetVideos)
	r.Get("/api/videos", h.ListVideos)

	// contact
	r.Post("/api/contact", h.SubmitContact)

	// scene
	r.Get("/api/scene/hero", h.HeroScene)
	r.Post("/api/scene/hero/pointer", h.HeroPointer)
	r.Get("/api/scene/box", h.BoxScene)
	r.Post("/api/scene/box/hover", h.BoxHover)
}

func healthz(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if opts.Ready != nil && !opts.Ready.Load() {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		for name, check := range opts.Checks {
			if err := check(ctx); err != nil {
				slog.Default().Warn("health_check_failed",
					slog.String("check", name),
					slog.String("err", err.Error()),
				)
				http.Error(w, name+" not ready", http.StatusServiceUnavailable)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

func metricsHandler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}

	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
