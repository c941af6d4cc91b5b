package dataapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-portfolio-showcase/internal/models"
	"github.com/pribylovaa/go-portfolio-showcase/internal/sources"
)

const (
	channelSearchJSON = `{"items":[{"id":{"kind":"youtube#channel","channelId":"UCresolved"},"snippet":{"channelId":"UCresolved","title":"Sayintt"}}]}`

	videoSearchJSON = `{"items":[
  {"id":{"kind":"youtube#video","videoId":"v1"},"snippet":{"title":"Rock &amp; Roll","description":"d1","publishedAt":"2024-03-01T10:00:00Z","thumbnails":{"high":{"url":"https://i.ytimg.com/vi/v1/hq.jpg"}}}},
  {"id":{"kind":"youtube#video","videoId":"v2"},"snippet":{"title":"Second","publishedAt":"2024-02-01T10:00:00Z"}}
]}`

	detailsJSON = `{"items":[{"id":"v1","contentDetails":{"duration":"PT1H2M3S"},"statistics":{"viewCount":"1500"}}]}`
)

// fakeAPI — подмена YouTube Data API; считает запросы поиска каналов.
type fakeAPI struct {
	channelSearches atomic.Int32
	search          string
	videos          string
	status          int
}

func (f *fakeAPI) server(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"no key"}}`))
			return
		}

		if f.status != 0 {
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"quotaExceeded"}}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.HasSuffix(r.URL.Path, "/search") && r.URL.Query().Get("type") == "channel":
			f.channelSearches.Add(1)
			_, _ = w.Write([]byte(channelSearchJSON))
		case strings.HasSuffix(r.URL.Path, "/search"):
			if r.URL.Query().Get("order") != "date" || r.URL.Query().Get("type") != "video" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(f.search))
		case strings.HasSuffix(r.URL.Path, "/videos"):
			_, _ = w.Write([]byte(f.videos))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func newSource(t *testing.T, srv *httptest.Server, opts Options) *Source {
	t.Helper()

	opts.Endpoint = srv.URL + "/"
	if opts.APIKey == "" {
		opts.APIKey = "test-key"
	}
	if opts.MaxResults == 0 {
		opts.MaxResults = 12
	}

	s, err := New(context.Background(), srv.Client(), opts)
	require.NoError(t, err)

	return s
}

func TestNew_RequiresKey(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), nil, Options{Handle: "@a", MaxResults: 1})
	require.ErrorIs(t, err, sources.ErrNotConfigured)
}

func TestFetch_ResolvesHandle_ZipsDetails(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{search: videoSearchJSON, videos: detailsJSON}
	s := newSource(t, api.server(t), Options{Handle: "@Sayintt"})
	require.Equal(t, sources.NameAPI, s.Name())

	got, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.EqualValues(t, 1, api.channelSearches.Load())

	require.Equal(t, models.VideoSummary{
		ID:             "v1",
		Title:          "Rock & Roll",
		ThumbnailURL:   "https://i.ytimg.com/vi/v1/hq.jpg",
		DurationLabel:  "1:02:03",
		PublishedAt:    "2024-03-01T10:00:00Z",
		ViewCountLabel: "1.5K",
		Description:    "d1",
	}, got[0])

	// У второго видео нет деталей и обложки провайдера.
	require.Equal(t, "v2", got[1].ID)
	require.Equal(t, "https://img.youtube.com/vi/v2/hqdefault.jpg", got[1].ThumbnailURL)
	require.Equal(t, models.NotAvailable, got[1].DurationLabel)
	require.Equal(t, models.NotAvailable, got[1].ViewCountLabel)
}

func TestFetch_ConfiguredChannelIDSkipsLookup(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{search: videoSearchJSON, videos: detailsJSON}
	s := newSource(t, api.server(t), Options{Handle: "@Sayintt", ChannelID: "UCfixed"})

	got, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Zero(t, api.channelSearches.Load())
}

func TestFetch_CapsToMaxResults(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{search: videoSearchJSON, videos: detailsJSON}
	s := newSource(t, api.server(t), Options{ChannelID: "UC1", MaxResults: 1})

	got, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "v1", got[0].ID)
}

func TestFetch_MissingPublishedAtDefaultsToFetchTime(t *testing.T) {
	t.Parallel()

	search := `{"items":[
  {"id":{"kind":"youtube#video","videoId":"n1"},"snippet":{"title":"No date","publishedAt":"  "}},
  {"id":{"kind":"youtube#video","videoId":"n2"},"snippet":{"title":"Dated","publishedAt":"2024-02-01T10:00:00Z"}}
]}`
	msk := time.FixedZone("MSK", 3*60*60)
	fetchedAt := time.Date(2024, 5, 1, 15, 30, 0, 0, msk)

	api := &fakeAPI{search: search, videos: `{"items":[]}`}
	s := newSource(t, api.server(t), Options{
		ChannelID: "UC1",
		Now:       func() time.Time { return fetchedAt },
	})

	got, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "2024-05-01T12:30:00Z", got[0].PublishedAt)
	require.Equal(t, "2024-02-01T10:00:00Z", got[1].PublishedAt)
}

func TestFetch_Errors(t *testing.T) {
	t.Parallel()

	t.Run("api_error", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{status: http.StatusForbidden}
		_, err := newSource(t, api.server(t), Options{Handle: "@a"}).Fetch(context.Background())
		require.ErrorIs(t, err, sources.ErrNetwork)
	})

	t.Run("bad_json", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{search: `{"items": nope}`, videos: detailsJSON}
		_, err := newSource(t, api.server(t), Options{ChannelID: "UC1"}).Fetch(context.Background())
		require.ErrorIs(t, err, sources.ErrParse)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{search: `{"items":[]}`, videos: `{"items":[]}`}
		_, err := newSource(t, api.server(t), Options{ChannelID: "UC1"}).Fetch(context.Background())
		require.ErrorIs(t, err, sources.ErrEmptyResult)
	})

	t.Run("no_handle_no_id", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{search: videoSearchJSON, videos: detailsJSON}
		_, err := newSource(t, api.server(t), Options{}).Fetch(context.Background())
		require.ErrorIs(t, err, sources.ErrNotConfigured)
	})
}
