package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID string `json:"userId"`
	// Upcoming только бронирования начиная с сегодняшнего дня
	Upcoming bool `json:"upcoming"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID       string `json:"id"`
	CourtID  int    `json:"courtId"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Date     string `json:"date"` // "2026-10-20"
	Hour     int    `json:"hour"`
	Type     string `json:"type"`

	VMType      string `json:"vmType,omitempty"`
	Opponent    string `json:"opponent,omitempty"`
	Opponent2   string `json:"opponent2,omitempty"`
	Partner     string `json:"partner,omitempty"`
	Description string `json:"description,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:          b.ID,
		CourtID:     b.CourtID,
		UserID:      b.UserID,
		UserName:    b.UserName,
		Date:        b.Date.String(),
		Hour:        b.Hour,
		Type:        string(b.Type),
		VMType:      string(b.VMType),
		Opponent:    b.Opponent,
		Opponent2:   b.Opponent2,
		Partner:     b.Partner,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
