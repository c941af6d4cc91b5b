package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact — сообщение из контактной формы портфолио.
type Contact struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Message    string
	RemoteAddr string
	// CreatedAt — время приёма сообщения (UTC).
	CreatedAt time.Time
}

// ContactInput — «сырые» поля формы до валидации.
type ContactInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Message    string `json:"message"`
	RemoteAddr string `json:"-"`
}

// ContactSentMessage — текст подтверждения, который форма показывает пользователю.
const ContactSentMessage = "Thank you! Your message has been sent."

// ContactReceipt — ответ на принятое сообщение.
type ContactReceipt struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactReceiptFrom строит ответ по сохранённому сообщению.
func ContactReceiptFrom(c Contact) ContactReceipt {
	return ContactReceipt{
		ID:        c.ID.String(),
		Message:   ContactSentMessage,
		CreatedAt: c.CreatedAt,
	}
}

// PointerInput — нормализованная позиция указателя в [-1, 1] по обеим осям.
type PointerInput struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HoverInput — указатель вошёл на коробку (true) или покинул её (false).
type HoverInput struct {
	Hovered bool `json:"hovered"`
}
