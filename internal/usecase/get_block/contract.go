package get_block

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListByDate(ctx context.Context, date types.DateString) ([]*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotValidator проверка адреса слота
type SlotValidator interface {
	ValidateSlot(courtID int, date types.DateString, hour int) error
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}
