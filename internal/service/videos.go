package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/pribylovaa/go-portfolio-showcase/internal/format"
	"github.com/pribylovaa/go-portfolio-showcase/internal/models"
	"github.com/pribylovaa/go-portfolio-showcase/internal/sources"
	"github.com/pribylovaa/go-portfolio-showcase/pkg/log"
)

// Исходы попытки источника (метка outcome).
const (
	outcomeOK            = "ok"
	outcomeNetwork       = "network"
	outcomeParse         = "parse"
	outcomeNotConfigured = "not_configured"
	outcomeEmpty         = "empty"
	outcomeError         = "error"
)

// LoadVideos проходит источники по порядку и показывает первый непустой список.
//
// Особенности:
//   - каждый источник вызывается не больше одного раза, строго последовательно;
//   - ошибка источника логируется и переводит цепочку к следующему;
//   - display (если не nil) получает ровно один вызов: ShowVideos или ShowError;
//   - отмена ctx прерывает цепочку и приводит к панели ошибки.
func (s *Service) LoadVideos(ctx context.Context, display Display) models.VideoList {
	const op = "service/videos/LoadVideos"

	lg := log.From(ctx)

	for _, src := range s.sources {
		if err := ctx.Err(); err != nil {
			lg.Warn("videos_canceled",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
			break
		}

		name := src.Name()
		start := s.now()

		// Отладочные логи источника получают его имя.
		videos, err := src.Fetch(log.With(ctx, slog.String("source", name)))
		if err == nil {
			videos = finalizeVideos(videos, s.cfg.Fetch.MaxResults, start)
			if len(videos) == 0 {
				err = sources.ErrEmptyResult
			}
		}

		if err != nil {
			s.metrics.ObserveSource(name, outcome(err), s.now().Sub(start))
			lg.Warn("source_failed",
				slog.String("op", op),
				slog.String("source", name),
				slog.String("err", err.Error()),
			)
			continue
		}

		s.metrics.ObserveSource(name, outcomeOK, s.now().Sub(start))
		s.metrics.WidgetLoaded(name)
		lg.Info("videos_loaded",
			slog.String("op", op),
			slog.String("source", name),
			slog.Int("count", len(videos)),
		)

		if display != nil {
			display.ShowVideos(videos, name)
		}

		return models.VideoList{Source: name, Videos: videos}
	}

	s.metrics.WidgetLoaded("")
	lg.Warn("videos_unavailable",
		slog.String("op", op),
		slog.Int("sources", len(s.sources)),
	)

	if display != nil {
		display.ShowError(s.ChannelURL())
	}

	return models.VideoList{Failed: true, Videos: []models.VideoSummary{}}
}

// ChannelURL — ссылка «Visit Channel» для панели ошибки.
// Без handle ведёт на страницу канала по идентификатору.
func (s *Service) ChannelURL() string {
	if h := strings.TrimSpace(s.cfg.Channel.Handle); h != "" {
		return format.ChannelURL(h)
	}

	if id := strings.TrimSpace(s.cfg.Channel.ID); id != "" {
		return "https://www.youtube.com/channel/" + id
	}

	return "https://www.youtube.com/"
}

// finalizeVideos доводит список источника до инвариантов карточки:
// без ID или заголовка карточка отбрасывается, пустые поля получают
// заглушки, длина ограничена maxResults. Без даты публикации карточка
// получает момент запроса fetchedAt.
func finalizeVideos(items []models.VideoSummary, maxResults int, fetchedAt time.Time) []models.VideoSummary {
	output := make([]models.VideoSummary, 0, len(items))

	for _, v := range items {
		if maxResults > 0 && len(output) == maxResults {
			break
		}

		v.ID = strings.TrimSpace(v.ID)
		v.Title = strings.TrimSpace(v.Title)
		if v.ID == "" || v.Title == "" {
			continue
		}

		if v.ThumbnailURL == "" {
			v.ThumbnailURL = format.ThumbnailURL(v.ID)
		}

		if v.DurationLabel == "" {
			v.DurationLabel = models.NotAvailable
		}

		v.PublishedAt = strings.TrimSpace(v.PublishedAt)
		if v.PublishedAt == "" {
			v.PublishedAt = fetchedAt.UTC().Format(time.RFC3339)
		}

		if v.ViewCountLabel == "" {
			v.ViewCountLabel = models.NotAvailable
		}

		output = append(output, v)
	}

	return output
}

func outcome(err error) string {
	switch {
	case errors.Is(err, sources.ErrNotConfigured):
		return outcomeNotConfigured
	case errors.Is(err, sources.ErrEmptyResult):
		return outcomeEmpty
	case errors.Is(err, sources.ErrParse):
		return outcomeParse
	case errors.Is(err, sources.ErrNetwork), errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return outcomeNetwork
	default:
		return outcomeError
	}
}
