package move_booking

import "github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"

// MoveBookingRequest целевой корт и час той же даты
type MoveBookingRequest struct {
	TargetCourtID int  `json:"targetCourtId"`
	TargetHour    int  `json:"targetHour"`
	WholeBlock    bool `json:"wholeBlock,omitempty"`
}

// MoveBookingResponse перенесённые бронирования
type MoveBookingResponse struct {
	Moved []models.BookingResponse `json:"moved"`
}
