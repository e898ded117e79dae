package check_booking

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListByDate(ctx context.Context, date types.DateString) ([]*domain.Booking, error)
}

// RuleEngine проверка правил бронирования
type RuleEngine interface {
	CanCreate(session rules.Session, day *domain.DayBookings, check rules.CreateCheck) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
