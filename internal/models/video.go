// models содержит доменные сущности showcase-сервиса.
// Эти типы используются источниками видео, сервисным слоем и транспортом.
package models

// NotAvailable — заглушка для полей, которые источник не отдаёт
// (длительность и просмотры у RSS и скрейпинга).
const NotAvailable = "N/A"

// VideoSummary — карточка видео для виджета.
//
// Особенности:
//   - ID и Title обязательны, без них карточка отбрасывается;
//   - остальные поля деградируют до заглушек, а не приводят к отказу;
//   - PublishedAt — строка ISO-8601 как её отдал источник.
type VideoSummary struct {
	// ID — идентификатор видео у провайдера.
	ID string `json:"id"`
	// Title — заголовок с раскодированными HTML-сущностями.
	Title string `json:"title"`
	// ThumbnailURL — обложка; по умолчанию выводится из ID.
	ThumbnailURL string `json:"thumbnail_url"`
	// DurationLabel — "H:MM:SS" / "MM:SS" или NotAvailable.
	DurationLabel string `json:"duration"`
	// PublishedAt — время публикации (ISO-8601).
	PublishedAt string `json:"published_at"`
	// ViewCountLabel — "1.2M" / "1.5K" / "999" или NotAvailable.
	ViewCountLabel string `json:"view_count"`
	// Description — описание, если источник его отдаёт.
	Description string `json:"description,omitempty"`
}

// VideoList — результат одного прохода цепочки источников.
type VideoList struct {
	// Source — имя источника, давшего непустой список ("" при неудаче).
	Source string `json:"source"`
	// Failed — все включённые источники исчерпаны без результата.
	Failed bool `json:"failed"`
	// Videos — карточки в порядке провайдера, не больше maxResults.
	Videos []VideoSummary `json:"videos"`
}
