// render строит HTML-фрагменты виджета видео: сетку карточек или панель ошибки.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/pribylovaa/go-portfolio-showcase/internal/format"
	"github.com/pribylovaa/go-portfolio-showcase/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer — набор разобранных шаблонов. Безопасен для конкурентного использования.
type Renderer struct {
	tmpl *template.Template
}

// New разбирает встроенные шаблоны.
func New() (*Renderer, error) {
	const op = "render.New"

	tmpl, err := template.New("widget").
		Funcs(template.FuncMap{
			"watchURL":      format.WatchURL,
			"publishedDate": format.PublishedDate,
		}).
		ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Videos пишет сетку карточек.
func (r *Renderer) Videos(w io.Writer, videos []models.VideoSummary, source string) error {
	return r.tmpl.ExecuteTemplate(w, "videos", struct {
		Source string
		Videos []models.VideoSummary
	}{Source: source, Videos: videos})
}

// Error пишет панель ошибки со ссылкой на канал.
func (r *Renderer) Error(w io.Writer, channelURL string) error {
	return r.tmpl.ExecuteTemplate(w, "error", struct {
		ChannelURL string
	}{ChannelURL: channelURL})
}

// Surface — поверхность одного запроса: реализует service.Display
// и копит HTML в собственном буфере. Не переиспользуется между запросами.
type Surface struct {
	r     *Renderer
	buf   bytes.Buffer
	err   error
	shown int
}

// NewSurface создаёт пустую поверхность.
func (r *Renderer) NewSurface() *Surface {
	return &Surface{r: r}
}

// ShowVideos заменяет содержимое поверхности сеткой карточек.
func (s *Surface) ShowVideos(videos []models.VideoSummary, source string) {
	s.buf.Reset()
	s.shown++
	s.err = s.r.Videos(&s.buf, videos, source)
}

// ShowError заменяет содержимое поверхности панелью ошибки.
func (s *Surface) ShowError(channelURL string) {
	s.buf.Reset()
	s.shown++
	s.err = s.r.Error(&s.buf, channelURL)
}

// Shown — сколько раз поверхность перерисовывалась.
func (s *Surface) Shown() int { return s.shown }

// Bytes возвращает итоговый HTML или ошибку шаблона.
func (s *Surface) Bytes() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.buf.Bytes(), nil
}
