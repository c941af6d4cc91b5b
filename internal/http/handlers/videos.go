package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	apierrors "github.com/pribylovaa/go-portfolio-showcase/internal/errors"
	"github.com/pribylovaa/go-portfolio-showcase/pkg/log"
)

// WidgetVideos отдаёт HTML-фрагмент виджета: сетку карточек или панель ошибки.
// Неудача всех источников — это штатный ответ 200 с панелью ошибки.
func (h *Handlers) WidgetVideos(w http.ResponseWriter, r *http.Request) {
	const op = "handlers/videos/WidgetVideos"

	surface := h.Renderer.NewSurface()
	h.Service.LoadVideos(r.Context(), surface)

	body, err := surface.Bytes()
	if err != nil {
		log.From(r.Context()).Error("render_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		apierrors.WriteError(w, r, fmt.Errorf("%s: %w", op, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// ListVideos отдаёт тот же результат в JSON: {source, failed, videos}.
func (h *Handlers) ListVideos(w http.ResponseWriter, r *http.Request) {
	list := h.Service.LoadVideos(r.Context(), nil)
	writeJSON(w, http.StatusOK, list)
}
