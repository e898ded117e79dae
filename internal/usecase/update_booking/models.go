package update_booking

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
)

// Request изменение типа и атрибутов одного бронирования.
// Корт, дата и час не меняются (для этого есть перенос)
type Request struct {
	Session    rules.Session
	BookingID  string
	Type       domain.BookingType
	Attributes domain.Attributes
}

// Response обновлённое бронирование
type Response struct {
	Booking *domain.Booking
}
