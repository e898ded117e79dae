package move_booking

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
)

// Request перенос бронирования на другой корт и/или час той же даты
type Request struct {
	Session       rules.Session
	BookingID     string
	TargetCourtID int
	// TargetHour новый час бронирования; при WholeBlock - новый первый час блока
	TargetHour int
	// WholeBlock переносит весь блок, сохраняя относительные часы
	WholeBlock bool
}

// Response перенесённые бронирования по возрастанию часа
type Response struct {
	Moved []*domain.Booking
}
