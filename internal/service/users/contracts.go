package users

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/token"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, at time.Time) error
	UpdateRole(ctx context.Context, id string, role domain.Role, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// BookingRepository удаление бронирований удаляемого пользователя
type BookingRepository interface {
	DeleteByUser(ctx context.Context, userID string) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenService выпуск и проверка токенов сессии
type TokenService interface {
	Generate(userID, email string) (string, error)
	Validate(tokenStr string) (*token.Claims, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
