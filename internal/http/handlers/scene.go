package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-portfolio-showcase/internal/errors"
	"github.com/pribylovaa/go-portfolio-showcase/internal/models"
)

func (h *Handlers) HeroScene(w http.ResponseWriter, r *http.Request) {
	if h.Scene == nil {
		http.NotFound(w, r)
		return
	}

	writeJSON(w, http.StatusOK, h.Scene.Snapshot())
}

// HeroPointer задаёт цель параллакса; сцена сама догоняет её по кадрам.
func (h *Handlers) HeroPointer(w http.ResponseWriter, r *http.Request) {
	if h.Scene == nil {
		http.NotFound(w, r)
		return
	}

	var in models.PointerInput
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.Scene.SetTarget(in.X, in.Y)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) BoxScene(w http.ResponseWriter, r *http.Request) {
	if h.Box == nil {
		http.NotFound(w, r)
		return
	}

	writeJSON(w, http.StatusOK, h.Box.Snapshot())
}

// BoxHover запускает переход наклона коробки при наведении и уходе указателя.
func (h *Handlers) BoxHover(w http.ResponseWriter, r *http.Request) {
	if h.Box == nil {
		http.NotFound(w, r)
		return
	}

	var in models.HoverInput
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.Box.SetHover(in.Hovered)
	w.WriteHeader(http.StatusNoContent)
}
