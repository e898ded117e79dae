package cancel_booking

import "github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"

// ConfirmationRequiredResponse бронирование входит в блок, нужен повтор с confirm=true
type ConfirmationRequiredResponse struct {
	Message     string `json:"message"`
	BlockLength int    `json:"blockLength"`
}

// CancelBookingResponse удалённые бронирования
type CancelBookingResponse struct {
	Cancelled []models.BookingResponse `json:"cancelled"`
}
