package check_booking

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
	checkBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/check_booking"
)

// CheckBookingRequest то же тело, что у создания бронирования
type CheckBookingRequest struct {
	CourtID   int    `json:"courtId"`
	Date      string `json:"date" validate:"required"`
	StartHour int    `json:"startHour"`
	Duration  int    `json:"duration,omitempty"`
	Type      string `json:"type" validate:"required"`
	handlers.BookingAttributes
}

// CheckBookingResponse результат проверки
type CheckBookingResponse struct {
	Allowed   bool                        `json:"allowed"`
	Violation *handlers.ViolationResponse `json:"violation,omitempty"`
}

func (r *CheckBookingRequest) ToUseCaseRequest(session rules.Session) *checkBooking.Request {
	duration := r.Duration
	if duration == 0 {
		duration = 1
	}

	return &checkBooking.Request{
		Session:    session,
		CourtID:    r.CourtID,
		Date:       r.Date,
		StartHour:  r.StartHour,
		Duration:   duration,
		Type:       domain.BookingType(r.Type),
		Attributes: r.BookingAttributes.ToDomain(),
	}
}
