package cancel_booking

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
)

// Request отмена бронирования; отменяется весь блок, которому оно принадлежит
type Request struct {
	Session   rules.Session
	BookingID string
	Confirmed bool // подтверждение удаления блока из нескольких часов
}

// Response удалённые бронирования
type Response struct {
	Cancelled []*domain.Booking
}
