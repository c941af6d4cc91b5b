package format

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFormatDuration — разбор PT#H#M#S и формат вывода.
func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "hours_minutes_seconds", token: "PT1H2M3S", want: "1:02:03"},
		{name: "seconds_only", token: "PT45S", want: "00:45"},
		{name: "minutes_only", token: "PT7M", want: "07:00"},
		{name: "hours_only", token: "PT2H", want: "2:00:00"},
		{name: "hours_not_padded", token: "PT10H5M9S", want: "10:05:09"},
		{name: "zero_hours_kept", token: "PT0H1M1S", want: "0:01:01"},
		{name: "long_minutes", token: "PT125M", want: "125:00"},
		{name: "empty_pt", token: "PT", want: "00:00"},
		{name: "surrounding_spaces", token: "  PT4M13S ", want: "04:13"},
		{name: "days_not_supported", token: "P1DT2H", want: "N/A"},
		{name: "garbage", token: "abc", want: "N/A"},
		{name: "empty", token: "", want: "N/A"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, FormatDuration(tt.token))
		})
	}
}

// TestFormatDuration_Shape — любой валидный токен даёт (\d+:)?\d{2}:\d{2}.
func TestFormatDuration_Shape(t *testing.T) {
	t.Parallel()

	shape := regexp.MustCompile(`^(\d+:)?\d{2}:\d{2}$`)
	for _, token := range []string{"PT1S", "PT59M59S", "PT1H", "PT3H30M", "PT12H0M0S", "PT9M", "PT"} {
		require.Regexp(t, shape, FormatDuration(token), token)
	}
}

// TestFormatViewCount — пороги K/M и округление до десятых.
func TestFormatViewCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{1049, "1.0K"},
		{1050, "1.1K"},
		{999_999, "1000.0K"},
		{1_000_000, "1.0M"},
		{1_250_000, "1.3M"},
		{2_300_000, "2.3M"},
		{15_000_000_000, "15000.0M"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, FormatViewCount(tt.in), "n=%d", tt.in)
	}
}

// TestFormatViewCountString — строковые значения провайдера.
func TestFormatViewCountString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "2.3M", FormatViewCountString("2300000"))
	require.Equal(t, "42", FormatViewCountString(" 42 "))
	require.Equal(t, "N/A", FormatViewCountString(""))
	require.Equal(t, "N/A", FormatViewCountString("many"))
}

// TestCleanTitle — пять сущностей и trim.
func TestCleanTitle(t *testing.T) {
	t.Parallel()

	require.Equal(t, "A & B", CleanTitle("A &amp; B"))
	require.Equal(t, `<b> "q" 'x'`, CleanTitle("  &lt;b&gt; &quot;q&quot; &#39;x&#39;  "))
	require.Equal(t, "&nbsp;kept", CleanTitle("&nbsp;kept"))
	require.Equal(t, "", CleanTitle("   "))
}

// TestCleanTitle_Idempotent — повторное применение не меняет результат
// для однократно экранированного ввода.
func TestCleanTitle_Idempotent(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"A &amp; B",
		"  plain title ",
		"Tom &amp; Jerry &#39;98",
		"x &lt; y &gt; z",
		"&quot;quoted&quot;",
		"",
	} {
		once := CleanTitle(in)
		require.Equal(t, once, CleanTitle(once), in)
	}
}

// TestCleanTitle_DoubleEscaped — &amp; раскрывается первым и за вызов
// снимается один уровень &amp;amp;; сущность после &amp; раскрывается сразу.
func TestCleanTitle_DoubleEscaped(t *testing.T) {
	t.Parallel()

	once := CleanTitle("A &amp;amp; B")
	require.Equal(t, "A &amp; B", once)
	require.Equal(t, "A & B", CleanTitle(once))

	require.Equal(t, "A < B", CleanTitle("A &amp;lt; B"))
}

// TestURLs — производные URL.
func TestURLs(t *testing.T) {
	t.Parallel()

	require.Equal(t, "https://img.youtube.com/vi/abc123/hqdefault.jpg", ThumbnailURL("abc123"))
	require.Equal(t, "https://www.youtube.com/watch?v=abc123", WatchURL("abc123"))
	require.Equal(t, "https://www.youtube.com/@Sayintt", ChannelURL("@Sayintt"))
	require.Equal(t, "https://www.youtube.com/@Sayintt", ChannelURL("Sayintt"))
	require.Equal(t, "", NormalizeHandle("  "))
}

// TestPublishedDate — формат даты карточки.
func TestPublishedDate(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Mar 5, 2024", PublishedDate("2024-03-05T10:00:00+00:00"))
	require.Equal(t, "not a date", PublishedDate("not a date"))
}
