package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-portfolio-showcase/internal/models"
	"github.com/pribylovaa/go-portfolio-showcase/pkg/log"
	"github.com/pribylovaa/go-portfolio-showcase/pkg/redact"
)

// reEmail — та же проверка, что у формы в браузере.
var reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SubmitContact валидирует и принимает сообщение контактной формы.
//
// Порядок: обязательные поля -> email -> длина сообщения -> лимит частоты -> сохранение.
// Ошибка Redis не блокирует приём (fail-open), ошибка БД возвращается.
func (s *Service) SubmitContact(ctx context.Context, in models.ContactInput) (models.Contact, error) {
	const op = "service/contact/SubmitContact"

	lg := log.From(ctx)

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	message := strings.TrimSpace(in.Message)

	if name == "" || email == "" || message == "" {
		s.metrics.ContactSubmitted("invalid")
		return models.Contact{}, fmt.Errorf("%s: name, email and message are required: %w", op, ErrInvalidArgument)
	}

	if !reEmail.MatchString(email) {
		s.metrics.ContactSubmitted("invalid")
		return models.Contact{}, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if n := utf8.RuneCountInString(message); n > s.cfg.Contact.MaxMessageLength {
		s.metrics.ContactSubmitted("invalid")
		return models.Contact{}, fmt.Errorf("%s: message is too long (%d > %d): %w",
			op, n, s.cfg.Contact.MaxMessageLength, ErrInvalidArgument)
	}

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, rateKey(in.RemoteAddr, email))
		switch {
		case err != nil:
			lg.Warn("rate_limit_unavailable",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		case !ok:
			s.metrics.ContactSubmitted("rate_limited")
			return models.Contact{}, fmt.Errorf("%s: %w", op, ErrRateLimited)
		}
	}

	c := models.Contact{
		ID:         uuid.New(),
		Name:       name,
		Email:      email,
		Message:    message,
		RemoteAddr: strings.TrimSpace(in.RemoteAddr),
		CreatedAt:  s.now().UTC(),
	}

	if s.contacts == nil {
		s.metrics.ContactSubmitted("ok")
		lg.Info("contact_simulated",
			slog.String("op", op),
			slog.String("id", c.ID.String()),
			slog.String("email", redact.Email(email)),
			slog.String("preview", redact.Preview(message, 40)),
		)
		return c, nil
	}

	if err := s.contacts.SaveContact(ctx, c); err != nil {
		s.metrics.ContactSubmitted("error")
		return models.Contact{}, fmt.Errorf("%s: save_contact: %w", op, err)
	}

	s.metrics.ContactSubmitted("ok")
	lg.Info("contact_saved",
		slog.String("op", op),
		slog.String("id", c.ID.String()),
		slog.String("email", redact.Email(email)),
	)

	return c, nil
}

// rateKey — ключ лимита: адрес клиента, а без него email.
func rateKey(remoteAddr, email string) string {
	if a := strings.TrimSpace(remoteAddr); a != "" {
		return "ip:" + a
	}

	return "email:" + strings.ToLower(email)
}
