// scrape реализует последний источник цепочки: разбор HTML-страницы канала.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gocolly/colly"

	"github.com/pribylovaa/go-portfolio-showcase/internal/format"
	"github.com/pribylovaa/go-portfolio-showcase/internal/models"
	"github.com/pribylovaa/go-portfolio-showcase/internal/sources"
)

// DefaultPageBase — адрес страниц каналов.
const DefaultPageBase = "https://www.youtube.com/"

const userAgent = "Mozilla/5.0 (compatible; showcase-service/1.0)"

var (
	reVideoID = regexp.MustCompile(`"videoId":"([^"]+)"`)
	reTitle   = regexp.MustCompile(`"title":"([^"]+)"`)
)

// Options — параметры скрейпера.
type Options struct {
	Handle     string
	MaxResults int
	Relay      sources.Relay
	Timeout    time.Duration
	// PageBase переопределяет адрес страниц канала (тесты).
	PageBase string
	// Transport — транспорт коллектора; nil означает http.DefaultTransport.
	Transport http.RoundTripper
	// Now — источник времени публикации; nil означает time.Now.
	Now func() time.Time
}

// Source реализует sources.Source поверх colly.
//
// Страница канала берётся сырым текстом, идентификаторы и заголовки
// ищутся регулярными выражениями и сопоставляются по позиции.
// Время публикации неизвестно и равно моменту разбора.
type Source struct {
	opts Options
}

// New создаёт скрейпер.
func New(opts Options) *Source {
	if opts.PageBase == "" {
		opts.PageBase = DefaultPageBase
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Source{opts: opts}
}

// Name — имя источника.
func (s *Source) Name() string { return sources.NameScrape }

// PageURL — адрес страницы канала до обёртки relay.
func (s *Source) PageURL() string {
	return s.opts.PageBase + format.NormalizeHandle(s.opts.Handle)
}

// Fetch загружает страницу канала и извлекает из неё видео.
func (s *Source) Fetch(ctx context.Context) ([]models.VideoSummary, error) {
	const op = "scrape.Fetch"

	if strings.TrimSpace(s.opts.Handle) == "" || s.opts.MaxResults <= 0 {
		return nil, fmt.Errorf("%s: handle or max_results: %w", op, sources.ErrNotConfigured)
	}

	body, err := s.page(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	videos := Extract(body, s.opts.MaxResults, s.opts.Now())
	if len(videos) == 0 {
		return nil, fmt.Errorf("%s: %w", op, sources.ErrEmptyResult)
	}

	return videos, nil
}

// page скачивает сырое тело страницы через коллектор.
func (s *Source) page(ctx context.Context) ([]byte, error) {
	c := colly.NewCollector(colly.UserAgent(userAgent))
	c.SetRequestTimeout(s.opts.Timeout)
	if s.opts.Transport != nil {
		c.WithTransport(s.opts.Transport)
	}

	var (
		body     []byte
		fetchErr error
	)

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
		}
	})

	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	c.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})

	visitErr := c.Visit(s.opts.Relay.Wrap(s.PageURL()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("page: %w: %w", sources.ErrNetwork, err)
	}

	if err := errors.Join(fetchErr, visitErr); err != nil {
		return nil, fmt.Errorf("page: %w: %w", sources.ErrNetwork, err)
	}

	if len(body) == 0 {
		return nil, fmt.Errorf("page: empty body: %w", sources.ErrParse)
	}

	return body, nil
}

// Extract сопоставляет i-й videoId с i-м title.
// Результат: не больше min(len(ids), len(titles), maxResults) карточек.
//
// Сопоставление по позиции ненадёжно: заголовок i может принадлежать
// другому видео, если разметка страницы изменится.
func Extract(body []byte, maxResults int, now time.Time) []models.VideoSummary {
	ids := reVideoID.FindAllSubmatch(body, -1)
	titles := reTitle.FindAllSubmatch(body, -1)

	n := min(len(ids), len(titles), maxResults)
	published := now.UTC().Format(time.RFC3339)

	output := make([]models.VideoSummary, 0, max(n, 0))
	for i := 0; i < n; i++ {
		id := string(ids[i][1])
		title := format.CleanTitle(string(titles[i][1]))
		if id == "" || title == "" {
			continue
		}

		output = append(output, models.VideoSummary{
			ID:             id,
			Title:          title,
			ThumbnailURL:   format.ThumbnailURL(id),
			DurationLabel:  models.NotAvailable,
			PublishedAt:    published,
			ViewCountLabel: models.NotAvailable,
		})
	}

	return output
}
