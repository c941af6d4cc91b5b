package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apierrors "github.com/pribylovaa/go-portfolio-showcase/internal/errors"
	"github.com/pribylovaa/go-portfolio-showcase/internal/models"
	"github.com/pribylovaa/go-portfolio-showcase/internal/render"
	"github.com/pribylovaa/go-portfolio-showcase/internal/scene"
	"github.com/pribylovaa/go-portfolio-showcase/internal/service"
)

// maxBodyBytes — верхняя граница тела JSON-запроса.
const maxBodyBytes = 64 << 10

// Service — то, что хендлерам нужно от сервисного слоя.
type Service interface {
	LoadVideos(ctx context.Context, display service.Display) models.VideoList
	SubmitContact(ctx context.Context, in models.ContactInput) (models.Contact, error)
}

// Scene — состояние декоративной сцены.
type Scene interface {
	Snapshot() scene.Snapshot
	SetTarget(x, y float64)
}

// Box — состояние коробки с обложкой.
type Box interface {
	Snapshot() scene.BoxSnapshot
	SetHover(hovered bool)
}

// Handlers агрегирует зависимости HTTP-слоя.
// Nil Scene или Box отключает соответствующие маршруты (404).
type Handlers struct {
	Service  Service
	Renderer *render.Renderer
	Scene    Scene
	Box      Box
}

func New(svc Service, rnd *render.Renderer, hero Scene, box Box) *Handlers {
	return &Handlers{Service: svc, Renderer: rnd, Scene: hero, Box: box}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
// Любая ошибка разбора оборачивается в apierrors.ErrBadRequest.
func decodeStrict(w http.ResponseWriter, r *http.Request, value any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil {
		return fmt.Errorf("%w: %v", apierrors.ErrBadRequest, err)
	}

	return nil
}
