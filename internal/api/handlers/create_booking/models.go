package create_booking

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
	createBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CourtID   int    `json:"courtId"`
	Date      string `json:"date" validate:"required"` // "2026-10-20"
	StartHour int    `json:"startHour"`
	Duration  int    `json:"duration,omitempty"` // 1 по умолчанию
	Type      string `json:"type" validate:"required"`
	handlers.BookingAttributes
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(session rules.Session) *createBooking.Request {
	duration := r.Duration
	if duration == 0 {
		duration = 1
	}

	return &createBooking.Request{
		Session:    session,
		CourtID:    r.CourtID,
		Date:       r.Date,
		StartHour:  r.StartHour,
		Duration:   duration,
		Type:       domain.BookingType(r.Type),
		Attributes: r.BookingAttributes.ToDomain(),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingListResponse {
	return models.FromDomainBookingList(resp.Bookings)
}
