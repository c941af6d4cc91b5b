// format реализует политики производных полей карточки видео:
// длительность, просмотры, очистку заголовков и канонические URL.
package format

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pribylovaa/go-portfolio-showcase/internal/models"
)

const (
	thumbnailTemplate = "https://img.youtube.com/vi/%s/hqdefault.jpg"
	watchBase         = "https://www.youtube.com/watch"
	channelBase       = "https://www.youtube.com/"
)

var reDuration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// FormatDuration переводит ISO-8601 токен вида PT#H#M#S в "H:MM:SS" / "MM:SS".
//
// Правила:
//   - отсутствующие компоненты равны 0;
//   - минуты и секунды всегда из двух цифр;
//   - часы выводятся только если присутствуют в токене, без дополнения нулями;
//   - нераспознанный токен -> models.NotAvailable.
func FormatDuration(token string) string {
	m := reDuration.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return models.NotAvailable
	}

	hours, minutes, seconds := m[1], m[2], m[3]

	var b strings.Builder
	if hours != "" {
		b.WriteString(hours)
		b.WriteByte(':')
	}
	b.WriteString(pad2(minutes))
	b.WriteByte(':')
	b.WriteString(pad2(seconds))

	return b.String()
}

func pad2(s string) string {
	switch len(s) {
	case 0:
		return "00"
	case 1:
		return "0" + s
	default:
		return s
	}
}

// FormatViewCount сокращает число просмотров: >=1e6 -> "x.yM", >=1e3 -> "x.yK",
// иначе целое число. Округление до десятых — половина вверх.
func FormatViewCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return tenths(n, 1_000_000) + "M"
	case n >= 1_000:
		return tenths(n, 1_000) + "K"
	default:
		return strconv.FormatInt(n, 10)
	}
}

func tenths(n, unit int64) string {
	t := (n*10 + unit/2) / unit
	return fmt.Sprintf("%d.%d", t/10, t%10)
}

// FormatViewCountString — FormatViewCount для строкового значения провайдера.
// Нечисловое или пустое значение -> models.NotAvailable.
func FormatViewCountString(raw string) string {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return models.NotAvailable
	}

	return FormatViewCount(n)
}

var titleEntities = [...][2]string{
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
}

// CleanTitle раскодирует пять HTML-сущностей (последовательно, в фиксированном
// порядке) и обрезает пробелы по краям. Другой санитизации нет.
func CleanTitle(title string) string {
	for _, e := range titleEntities {
		title = strings.ReplaceAll(title, e[0], e[1])
	}

	return strings.TrimSpace(title)
}

// ThumbnailURL выводит URL обложки из идентификатора видео.
func ThumbnailURL(id string) string {
	return fmt.Sprintf(thumbnailTemplate, url.PathEscape(id))
}

// WatchURL — каноническая ссылка на просмотр видео.
func WatchURL(id string) string {
	return watchBase + "?v=" + url.QueryEscape(id)
}

// ChannelURL — страница канала по handle; "@" добавляется при отсутствии.
func ChannelURL(handle string) string {
	return channelBase + NormalizeHandle(handle)
}

// NormalizeHandle приводит handle к виду "@name".
func NormalizeHandle(handle string) string {
	handle = strings.TrimSpace(handle)
	if handle == "" || strings.HasPrefix(handle, "@") {
		return handle
	}

	return "@" + handle
}

// PublishedDate форматирует ISO-8601 время публикации как "Jan 2, 2006".
// Нераспознанное значение возвращается как есть.
func PublishedDate(raw string) string {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return raw
	}

	return t.Format("Jan 2, 2006")
}
