package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-portfolio-showcase/internal/models"
	"github.com/pribylovaa/go-portfolio-showcase/mocks"
)

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.FixedZone("MSK", 3*3600))

func validInput() models.ContactInput {
	return models.ContactInput{
		Name:       " Ann ",
		Email:      "ann@example.com",
		Message:    " Hello there ",
		RemoteAddr: "10.0.0.1",
	}
}

// TestSubmitContact_Saved_OK — валидное сообщение проходит лимит и сохраняется.
func TestSubmitContact_Saved_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockContactStorage(ctrl)
	lim := mocks.NewMockRateLimiter(ctrl)

	var saved models.Contact
	gomock.InOrder(
		lim.EXPECT().Allow(gomock.Any(), "ip:10.0.0.1").Return(true, nil),
		st.EXPECT().SaveContact(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c models.Contact) error {
				saved = c
				return nil
			}),
	)

	svc := New(testConfig(12), nil,
		WithContactStorage(st),
		WithLimiter(lim),
		WithClock(func() time.Time { return fixedNow }),
	)

	got, err := svc.SubmitContact(context.Background(), validInput())
	require.NoError(t, err)

	require.NotEqual(t, uuid.Nil, got.ID)
	require.Equal(t, "Ann", got.Name)
	require.Equal(t, "Hello there", got.Message)
	require.Equal(t, fixedNow.UTC(), got.CreatedAt)
	require.Equal(t, time.UTC, got.CreatedAt.Location())
	require.Equal(t, got, saved)
}

// TestSubmitContact_Validation — ошибки валидации не доходят до лимита и БД.
func TestSubmitContact_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(in *models.ContactInput)
		wantErr error
	}{
		{name: "empty_name", mutate: func(in *models.ContactInput) { in.Name = "  " }, wantErr: ErrInvalidArgument},
		{name: "empty_email", mutate: func(in *models.ContactInput) { in.Email = "" }, wantErr: ErrInvalidArgument},
		{name: "empty_message", mutate: func(in *models.ContactInput) { in.Message = "\n" }, wantErr: ErrInvalidArgument},
		{name: "no_at", mutate: func(in *models.ContactInput) { in.Email = "ann.example.com" }, wantErr: ErrInvalidEmail},
		{name: "no_dot_domain", mutate: func(in *models.ContactInput) { in.Email = "ann@example" }, wantErr: ErrInvalidEmail},
		{name: "space_inside", mutate: func(in *models.ContactInput) { in.Email = "an n@example.com" }, wantErr: ErrInvalidEmail},
		{name: "too_long", mutate: func(in *models.ContactInput) { in.Message = strings.Repeat("я", 101) }, wantErr: ErrInvalidArgument},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			st := mocks.NewMockContactStorage(ctrl)
			lim := mocks.NewMockRateLimiter(ctrl)

			in := validInput()
			tt.mutate(&in)

			_, err := New(testConfig(12), nil, WithContactStorage(st), WithLimiter(lim)).
				SubmitContact(context.Background(), in)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestSubmitContact_RateLimited — превышение лимита -> ErrRateLimited без сохранения.
func TestSubmitContact_RateLimited(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockContactStorage(ctrl)
	lim := mocks.NewMockRateLimiter(ctrl)

	lim.EXPECT().Allow(gomock.Any(), "email:ann@example.com").Return(false, nil)

	in := validInput()
	in.RemoteAddr = ""
	in.Email = "Ann@Example.com"

	_, err := New(testConfig(12), nil, WithContactStorage(st), WithLimiter(lim)).
		SubmitContact(context.Background(), in)
	require.ErrorIs(t, err, ErrRateLimited)
}

// TestSubmitContact_LimiterDown_FailOpen — недоступный Redis не блокирует приём.
func TestSubmitContact_LimiterDown_FailOpen(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockContactStorage(ctrl)
	lim := mocks.NewMockRateLimiter(ctrl)

	lim.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))
	st.EXPECT().SaveContact(gomock.Any(), gomock.Any()).Return(nil)

	_, err := New(testConfig(12), nil, WithContactStorage(st), WithLimiter(lim)).
		SubmitContact(context.Background(), validInput())
	require.NoError(t, err)
}

// TestSubmitContact_StorageError — ошибка БД возвращается обёрнутой.
func TestSubmitContact_StorageError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockContactStorage(ctrl)

	dbErr := errors.New("db down")
	st.EXPECT().SaveContact(gomock.Any(), gomock.Any()).Return(dbErr)

	_, err := New(testConfig(12), nil, WithContactStorage(st)).
		SubmitContact(context.Background(), validInput())
	require.ErrorIs(t, err, dbErr)
}

// TestSubmitContact_NoStorage_Simulated — без хранилища сообщение только логируется.
func TestSubmitContact_NoStorage_Simulated(t *testing.T) {
	t.Parallel()

	got, err := New(testConfig(12), nil).SubmitContact(context.Background(), validInput())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, got.ID)
	require.Equal(t, "ann@example.com", got.Email)
}
