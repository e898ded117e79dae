package update_booking

import "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"

// UpdateBookingRequest новый тип и атрибуты бронирования
type UpdateBookingRequest struct {
	Type string `json:"type" validate:"required"`
	handlers.BookingAttributes
}
