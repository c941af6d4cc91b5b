// service содержит бизнес-логику showcase-сервиса:
// цепочку источников видео и приём сообщений контактной формы.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/pribylovaa/go-portfolio-showcase/internal/config"
	"github.com/pribylovaa/go-portfolio-showcase/internal/metrics"
	"github.com/pribylovaa/go-portfolio-showcase/internal/models"
	"github.com/pribylovaa/go-portfolio-showcase/internal/sources"
	"github.com/pribylovaa/go-portfolio-showcase/internal/storage"
)

var (
	// ErrInvalidArgument — не заполнено обязательное поле или превышена длина.
	// Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidEmail — адрес не похож на email.
	// Транспорт: 400.
	ErrInvalidEmail = errors.New("invalid email")
	// ErrRateLimited — слишком много сообщений с одного адреса.
	// Транспорт: 429.
	ErrRateLimited = errors.New("rate limited")
)

// Display — поверхность, на которой виджет показывает результат.
// За один вызов LoadVideos вызывается ровно один из методов.
type Display interface {
	ShowVideos(videos []models.VideoSummary, source string)
	ShowError(channelURL string)
}

// Limiter — ограничитель частоты отправки формы.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Service — описывает бизнес-логику showcase-service.
type Service struct {
	sources  []sources.Source
	contacts storage.ContactStorage
	limiter  Limiter
	metrics  *metrics.Metrics
	cfg      config.Config
	now      func() time.Time
}

// Option настраивает необязательные зависимости сервиса.
type Option func(*Service)

// WithContactStorage — хранилище сообщений. Без него сообщения только логируются.
func WithContactStorage(st storage.ContactStorage) Option {
	return func(s *Service) { s.contacts = st }
}

// WithLimiter — ограничитель частоты. Без него лимита нет.
func WithLimiter(l Limiter) Option {
	return func(s *Service) { s.limiter = l }
}

// WithMetrics — Prometheus-метрики.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New создает новый экземпляр Service.
// srcs — источники в порядке приоритета.
func New(cfg config.Config, srcs []sources.Source, opts ...Option) *Service {
	s := &Service{
		sources: append([]sources.Source(nil), srcs...),
		cfg:     cfg,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Sources возвращает имена источников в порядке попыток.
func (s *Service) Sources() []string {
	names := make([]string, 0, len(s.sources))
	for _, src := range s.sources {
		names = append(names, src.Name())
	}

	return names
}
