// storage определяет контракты хранения сообщений контактной формы.
package storage

import (
	"context"
	"errors"

	"github.com/pribylovaa/go-portfolio-showcase/internal/models"
)

// ErrConflict — сообщение с таким ID уже сохранено.
var ErrConflict = errors.New("conflict")

// ContactStorage описывает операции над models.Contact.
type ContactStorage interface {
	// SaveContact сохраняет одно сообщение. Повтор ID -> ErrConflict.
	SaveContact(ctx context.Context, c models.Contact) error
	// RecentContacts возвращает последние limit сообщений, новые первыми.
	RecentContacts(ctx context.Context, limit int) ([]models.Contact, error)
}

// Storage — хранилище с управлением жизненным циклом.
type Storage interface {
	ContactStorage
	Ping(ctx context.Context) error
	Close()
}
