// rss реализует источник видео по Atom-ленте канала.
package rss

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/pribylovaa/go-portfolio-showcase/internal/format"
	"github.com/pribylovaa/go-portfolio-showcase/internal/models"
	"github.com/pribylovaa/go-portfolio-showcase/internal/sources"
	"github.com/pribylovaa/go-portfolio-showcase/pkg/log"
)

// DefaultFeedBase — адрес Atom-ленты каналов YouTube.
const DefaultFeedBase = "https://www.youtube.com/feeds/videos.xml"

// Options — параметры RSS-источника.
type Options struct {
	Handle     string
	ChannelID  string
	MaxResults int
	Relay      sources.Relay
	// FeedBase переопределяет адрес ленты (тесты).
	FeedBase string
	// Now — время публикации для записей без <published>; nil означает time.Now.
	Now func() time.Time
}

// Source реализует sources.Source для ленты канала.
// HTTP-клиент настраивается извне (таймауты, прокси и т.д.).
type Source struct {
	client *http.Client
	opts   Options
}

// New создаёт RSS-источник.
func New(client *http.Client, opts Options) *Source {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	if opts.FeedBase == "" {
		opts.FeedBase = DefaultFeedBase
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Source{client: client, opts: opts}
}

// Name — имя источника.
func (s *Source) Name() string { return sources.NameRSS }

// FeedURLs — адреса лент в порядке попыток: по channel_id, затем по user.
// Пустые значения пропускаются, дубликаты удаляются.
func (s *Source) FeedURLs() []string {
	var output []string
	seen := make(map[string]struct{}, 2)

	add := func(key, value string) {
		if value == "" {
			return
		}

		u := s.opts.FeedBase + "?" + key + "=" + url.QueryEscape(value)
		if _, ok := seen[u]; ok {
			return
		}

		seen[u] = struct{}{}
		output = append(output, u)
	}

	add("channel_id", s.opts.ChannelID)
	add("user", strings.TrimPrefix(strings.TrimSpace(s.opts.Handle), "@"))

	return output
}

// Fetch пробует ленты по очереди и возвращает первую непустую.
func (s *Source) Fetch(ctx context.Context) ([]models.VideoSummary, error) {
	const op = "rss.Fetch"

	if s.opts.MaxResults <= 0 {
		return nil, fmt.Errorf("%s: max_results: %w", op, sources.ErrNotConfigured)
	}

	urls := s.FeedURLs()
	if len(urls) == 0 {
		return nil, fmt.Errorf("%s: no channel id or handle: %w", op, sources.ErrNotConfigured)
	}

	lg := log.From(ctx)

	lastErr := sources.ErrEmptyResult
	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", op, sources.ErrNetwork, err)
		}

		videos, err := s.fetchOne(ctx, u)
		if err != nil {
			lg.Debug("feed_failed",
				slog.String("op", op),
				slog.String("url", u),
				slog.String("err", err.Error()),
			)
			lastErr = err
			continue
		}

		if len(videos) > 0 {
			return videos, nil
		}
	}

	return nil, fmt.Errorf("%s: %w", op, lastErr)
}

// fetchOne загружает и разбирает одну ленту.
func (s *Source) fetchOne(ctx context.Context, feedURL string) ([]models.VideoSummary, error) {
	const op = "rss.fetchOne"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.opts.Relay.Wrap(feedURL), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new_request: %w: %w", op, sources.ErrNetwork, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: do: %w: %w", op, sources.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: status=%d: %w", op, resp.StatusCode, sources.ErrNetwork)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: parse: %w: %w", op, sources.ErrParse, err)
	}

	return s.convert(feed), nil
}

// convert переводит записи ленты в карточки, не больше MaxResults.
// Записи без идентификатора или заголовка пропускаются и место не занимают.
func (s *Source) convert(feed *gofeed.Feed) []models.VideoSummary {
	output := make([]models.VideoSummary, 0, min(len(feed.Items), s.opts.MaxResults))
	fetchedAt := s.opts.Now()

	for _, item := range feed.Items {
		if len(output) == s.opts.MaxResults {
			break
		}

		id := strings.TrimSpace(videoID(item))
		title := format.CleanTitle(item.Title)
		if id == "" || title == "" {
			continue
		}

		output = append(output, models.VideoSummary{
			ID:             id,
			Title:          title,
			ThumbnailURL:   format.ThumbnailURL(id),
			DurationLabel:  models.NotAvailable,
			PublishedAt:    published(item, fetchedAt),
			ViewCountLabel: models.NotAvailable,
			Description:    strings.TrimSpace(mediaDescription(item)),
		})
	}

	return output
}

// videoID берёт yt:videoId, а при его отсутствии — параметр v из ссылки.
func videoID(item *gofeed.Item) string {
	if v := extValue(item.Extensions, "yt", "videoId"); v != "" {
		return v
	}

	u, err := url.Parse(strings.TrimSpace(item.Link))
	if err != nil {
		return ""
	}

	return u.Query().Get("v")
}

// published — дата записи в UTC; без <published> берётся момент запроса.
func published(item *gofeed.Item, fetchedAt time.Time) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC().Format(time.RFC3339)
	}

	if v := strings.TrimSpace(item.Published); v != "" {
		return v
	}

	return fetchedAt.UTC().Format(time.RFC3339)
}

// mediaDescription — media:group/media:description, затем description записи.
func mediaDescription(item *gofeed.Item) string {
	for _, group := range item.Extensions["media"]["group"] {
		for _, d := range group.Children["description"] {
			if d.Value != "" {
				return d.Value
			}
		}
	}

	if v := extValue(item.Extensions, "media", "description"); v != "" {
		return v
	}

	return item.Description
}

func extValue(exts ext.Extensions, ns, name string) string {
	for _, e := range exts[ns][name] {
		if v := strings.TrimSpace(e.Value); v != "" {
			return v
		}
	}

	return ""
}

