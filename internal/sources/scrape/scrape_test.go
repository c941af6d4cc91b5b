package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-portfolio-showcase/internal/models"
	"github.com/pribylovaa/go-portfolio-showcase/internal/sources"
)

// channelPage — фрагмент страницы канала с встроенным JSON.
const channelPage = `<html><body><script>var ytInitialData = {
"contents":[
 {"videoRenderer":{"videoId":"aaa111","title":"First &amp; best"}},
 {"videoRenderer":{"videoId":"bbb222","title":"Second"}},
 {"videoRenderer":{"videoId":"ccc333","title":"Third"}}
]};</script></body></html>`

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func pageServer(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, &gotPath
}

func TestExtract_PairsPositionally(t *testing.T) {
	t.Parallel()

	got := Extract([]byte(channelPage), 12, fixedNow)
	require.Len(t, got, 3)

	require.Equal(t, models.VideoSummary{
		ID:             "aaa111",
		Title:          "First & best",
		ThumbnailURL:   "https://img.youtube.com/vi/aaa111/hqdefault.jpg",
		DurationLabel:  models.NotAvailable,
		PublishedAt:    "2024-05-01T12:00:00Z",
		ViewCountLabel: models.NotAvailable,
	}, got[0])
	require.Equal(t, "bbb222", got[1].ID)
	require.Equal(t, "Second", got[1].Title)
}

func TestExtract_Truncation(t *testing.T) {
	t.Parallel()

	require.Len(t, Extract([]byte(channelPage), 2, fixedNow), 2, "ограничение maxResults")

	// Заголовков меньше, чем идентификаторов.
	body := `"videoId":"a" "videoId":"b" "videoId":"c" "title":"only one"`
	got := Extract([]byte(body), 12, fixedNow)
	require.Len(t, got, 1)
	require.Equal(t, "a", got[0].ID)
	require.Equal(t, "only one", got[0].Title)

	require.Empty(t, Extract([]byte("<html></html>"), 12, fixedNow))
}

func TestFetch_OK(t *testing.T) {
	t.Parallel()

	srv, gotPath := pageServer(t, http.StatusOK, channelPage)

	s := New(Options{
		Handle:     "Sayintt",
		MaxResults: 2,
		PageBase:   srv.URL + "/",
		Now:        func() time.Time { return fixedNow },
	})
	require.Equal(t, sources.NameScrape, s.Name())

	got, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "/@Sayintt", *gotPath, "handle нормализуется с @")
}

func TestFetch_ViaRelay(t *testing.T) {
	t.Parallel()

	var target string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target = r.URL.Query().Get("url")
		_, _ = w.Write([]byte(channelPage))
	}))
	t.Cleanup(srv.Close)

	s := New(Options{
		Handle:     "@Sayintt",
		MaxResults: 12,
		Relay:      sources.Relay{Prefix: srv.URL + "/raw?url="},
	})

	got, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "https://www.youtube.com/@Sayintt", target)
}

func TestFetch_Errors(t *testing.T) {
	t.Parallel()

	t.Run("not_configured", func(t *testing.T) {
		t.Parallel()

		_, err := New(Options{MaxResults: 12}).Fetch(context.Background())
		require.ErrorIs(t, err, sources.ErrNotConfigured)
	})

	t.Run("status", func(t *testing.T) {
		t.Parallel()

		srv, _ := pageServer(t, http.StatusInternalServerError, "oops")
		_, err := New(Options{Handle: "@a", MaxResults: 12, PageBase: srv.URL + "/"}).Fetch(context.Background())
		require.ErrorIs(t, err, sources.ErrNetwork)
	})

	t.Run("no_videos", func(t *testing.T) {
		t.Parallel()

		srv, _ := pageServer(t, http.StatusOK, "<html>consent page</html>")
		_, err := New(Options{Handle: "@a", MaxResults: 12, PageBase: srv.URL + "/"}).Fetch(context.Background())
		require.ErrorIs(t, err, sources.ErrEmptyResult)
	})

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()

		srv, _ := pageServer(t, http.StatusOK, channelPage)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := New(Options{Handle: "@a", MaxResults: 12, PageBase: srv.URL + "/"}).Fetch(ctx)
		require.ErrorIs(t, err, sources.ErrNetwork)
	})
}
