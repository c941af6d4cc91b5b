// dataapi реализует источник видео через YouTube Data API v3.
package dataapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/pribylovaa/go-portfolio-showcase/internal/format"
	"github.com/pribylovaa/go-portfolio-showcase/internal/models"
	"github.com/pribylovaa/go-portfolio-showcase/internal/sources"
)

// Options — параметры API-источника.
type Options struct {
	APIKey     string
	Handle     string
	ChannelID  string
	MaxResults int
	// Endpoint переопределяет базовый адрес API (тесты).
	Endpoint string
	// Now — время публикации для сниппетов без publishedAt; nil означает time.Now.
	Now func() time.Time
}

// Source реализует sources.Source поверх youtube.Service.
//
// Цепочка запросов: поиск канала по handle (если ChannelID не задан),
// поиск последних видео канала, затем один пакетный запрос деталей.
// Детали сопоставляются со списком по индексу.
type Source struct {
	svc  *youtube.Service
	opts Options
}

// New создаёт API-источник. Ключ передаётся query-параметром key
// через транспорт клиента, поэтому клиент может иметь свои таймауты.
func New(ctx context.Context, client *http.Client, opts Options) (*Source, error) {
	const op = "dataapi.New"

	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("%s: api key: %w", op, sources.ErrNotConfigured)
	}

	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	keyed := *client
	keyed.Transport = &transport.APIKey{Key: opts.APIKey, Transport: base}

	clientOpts := []option.ClientOption{option.WithHTTPClient(&keyed)}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	svc, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: new_service: %w", op, err)
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Source{svc: svc, opts: opts}, nil
}

// Name — имя источника.
func (s *Source) Name() string { return sources.NameAPI }

// Fetch возвращает последние видео канала с длительностью и просмотрами.
func (s *Source) Fetch(ctx context.Context) ([]models.VideoSummary, error) {
	const op = "dataapi.Fetch"

	if s.opts.MaxResults <= 0 {
		return nil, fmt.Errorf("%s: max_results: %w", op, sources.ErrNotConfigured)
	}

	channelID, err := s.resolveChannel(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	found, err := s.svc.Search.List([]string{"snippet"}).
		ChannelId(channelID).
		MaxResults(int64(s.opts.MaxResults)).
		Order("date").
		Type("video").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%s: search_videos: %w", op, classify(err))
	}

	var (
		ids      []string
		snippets []*youtube.SearchResultSnippet
	)
	for _, item := range found.Items {
		if item == nil || item.Id == nil || item.Id.VideoId == "" {
			continue
		}

		ids = append(ids, item.Id.VideoId)
		snippets = append(snippets, item.Snippet)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("%s: %w", op, sources.ErrEmptyResult)
	}

	if len(ids) > s.opts.MaxResults {
		ids, snippets = ids[:s.opts.MaxResults], snippets[:s.opts.MaxResults]
	}

	details, err := s.svc.Videos.List([]string{"contentDetails", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%s: videos_details: %w", op, classify(err))
	}

	output := make([]models.VideoSummary, 0, len(ids))
	fetchedAt := s.opts.Now()
	for i, id := range ids {
		var detail *youtube.Video
		if i < len(details.Items) {
			detail = details.Items[i]
		}

		output = append(output, summary(id, snippets[i], detail, fetchedAt))
	}

	return output, nil
}

// resolveChannel возвращает идентификатор канала: из настроек
// или первым результатом поиска по handle.
func (s *Source) resolveChannel(ctx context.Context) (string, error) {
	if id := strings.TrimSpace(s.opts.ChannelID); id != "" {
		return id, nil
	}

	handle := strings.TrimSpace(s.opts.Handle)
	if handle == "" {
		return "", fmt.Errorf("resolve_channel: no handle: %w", sources.ErrNotConfigured)
	}

	resp, err := s.svc.Search.List([]string{"snippet"}).
		Q(handle).
		Type("channel").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("resolve_channel: %w", classify(err))
	}

	for _, item := range resp.Items {
		if item == nil {
			continue
		}

		if item.Id != nil && item.Id.ChannelId != "" {
			return item.Id.ChannelId, nil
		}

		if item.Snippet != nil && item.Snippet.ChannelId != "" {
			return item.Snippet.ChannelId, nil
		}
	}

	return "", fmt.Errorf("resolve_channel: %w", sources.ErrEmptyResult)
}

// summary собирает карточку; отсутствующие детали деградируют до заглушек,
// пустая дата публикации заменяется моментом запроса.
func summary(id string, sn *youtube.SearchResultSnippet, detail *youtube.Video, fetchedAt time.Time) models.VideoSummary {
	v := models.VideoSummary{
		ID:             id,
		ThumbnailURL:   format.ThumbnailURL(id),
		DurationLabel:  models.NotAvailable,
		PublishedAt:    fetchedAt.UTC().Format(time.RFC3339),
		ViewCountLabel: models.NotAvailable,
	}

	if sn != nil {
		v.Title = format.CleanTitle(sn.Title)
		if p := strings.TrimSpace(sn.PublishedAt); p != "" {
			v.PublishedAt = p
		}
		v.Description = strings.TrimSpace(sn.Description)

		if sn.Thumbnails != nil && sn.Thumbnails.High != nil && sn.Thumbnails.High.Url != "" {
			v.ThumbnailURL = sn.Thumbnails.High.Url
		}
	}

	if detail != nil {
		if detail.ContentDetails != nil {
			v.DurationLabel = format.FormatDuration(detail.ContentDetails.Duration)
		}

		if detail.Statistics != nil {
			v.ViewCountLabel = format.FormatViewCount(int64(detail.Statistics.ViewCount))
		}
	}

	return v
}

// classify относит ошибку клиента к sentinel-ам пакета sources:
// битый JSON — ErrParse, всё остальное (коды API, транспорт) — ErrNetwork.
func classify(err error) error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return fmt.Errorf("%w: %w", sources.ErrParse, err)
	}

	return fmt.Errorf("%w: %w", sources.ErrNetwork, err)
}
