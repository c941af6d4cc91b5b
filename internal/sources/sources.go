// sources описывает источники списка видео для виджета и общие для них
// ошибки и relay-обёртку.
package sources

import (
	"context"
	"errors"
	"net/url"

	"github.com/pribylovaa/go-portfolio-showcase/internal/models"
)

// Имена источников. Используются в логах, метриках и в поле VideoList.Source.
const (
	NameRSS    = "rss"
	NameAPI    = "api"
	NameScrape = "scrape"
)

var (
	// ErrNetwork — провайдер недоступен или ответил не 2xx.
	ErrNetwork = errors.New("network error")
	// ErrParse — ответ получен, но не разобран.
	ErrParse = errors.New("parse error")
	// ErrNotConfigured — источнику не хватает настроек (ключ, handle).
	ErrNotConfigured = errors.New("source not configured")
	// ErrEmptyResult — ответ корректный, но видео в нём нет.
	ErrEmptyResult = errors.New("empty result")
)

// Source — один источник списка последних видео канала.
//
// Требования к реализации:
// 1) Fetch возвращает не больше maxResults карточек в порядке провайдера.
// 2) Ошибка оборачивает один из sentinel-ов пакета.
// 3) Реализация обязана уважать ctx (отмена/таймауты).
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.VideoSummary, error)
}

// DefaultRelayPrefix — публичный cross-origin relay исходного сайта.
const DefaultRelayPrefix = "https://api.allorigins.win/raw?url="

// Relay переписывает адрес провайдера в адрес relay-прокси.
// Пустой Prefix означает прямой запрос.
type Relay struct {
	Prefix string
}

// Wrap возвращает адрес, по которому нужно идти за target.
func (r Relay) Wrap(target string) string {
	if r.Prefix == "" {
		return target
	}

	return r.Prefix + url.QueryEscape(target)
}
