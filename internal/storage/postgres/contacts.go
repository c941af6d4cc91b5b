package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pribylovaa/go-portfolio-showcase/internal/models"
	"github.com/pribylovaa/go-portfolio-showcase/internal/storage"
)

// SaveContact сохраняет сообщение контактной формы.
// Повторная вставка того же ID возвращает storage.ErrConflict.
func (s *Storage) SaveContact(ctx context.Context, c models.Contact) error {
	const op = "storage.postgres.SaveContact"

	_, err := s.db.Exec(ctx, `
		INSERT INTO contacts (id, name, email, message, remote_addr, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Email, c.Message, c.RemoteAddr, c.CreatedAt.UTC(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RecentContacts возвращает последние limit сообщений.
// Сортировка фиксирована: created_at DESC, id DESC.
func (s *Storage) RecentContacts(ctx context.Context, limit int) ([]models.Contact, error) {
	const op = "storage.postgres.RecentContacts"

	if limit <= 0 {
		limit = 1
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, name, email, message, remote_addr, created_at
		FROM contacts
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}

	output, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Contact, error) {
		var c models.Contact
		err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.RemoteAddr, &c.CreatedAt)
		c.CreatedAt = c.CreatedAt.UTC()
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: scan: %w", op, err)
	}

	return output, nil
}
