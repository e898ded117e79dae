package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListByDate(ctx context.Context, date types.DateString) ([]*domain.Booking, error)
	Create(ctx context.Context, bookings []*domain.Booking) error
}

// RuleEngine проверка правил бронирования
type RuleEngine interface {
	CanCreate(session rules.Session, day *domain.DayBookings, check rules.CreateCheck) error
	Reject(err error) error
	Now() time.Time
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчики бронирований
type Metrics interface {
	BookingsCreated(bookingType string, n int)
}

// IDGenerator генератор идентификаторов бронирований
type IDGenerator func() string

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
