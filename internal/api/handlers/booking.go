package handlers

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
)

// BookingAttributes атрибуты бронирования в теле запроса.
// Какие из них сохраняются, зависит от типа бронирования
type BookingAttributes struct {
	VMType      string `json:"vmType,omitempty"`
	Opponent    string `json:"opponent,omitempty" validate:"max=200"`
	Opponent2   string `json:"opponent2,omitempty" validate:"max=200"`
	Partner     string `json:"partner,omitempty" validate:"max=200"`
	Description string `json:"description,omitempty" validate:"max=200"`
}

// ToDomain конвертирует атрибуты в domain модель
func (a BookingAttributes) ToDomain() domain.Attributes {
	return domain.Attributes{
		VMType:      domain.VMType(a.VMType),
		Opponent:    a.Opponent,
		Opponent2:   a.Opponent2,
		Partner:     a.Partner,
		Description: a.Description,
	}
}

// NewViolationResponse тело ответа для нарушения правил
func NewViolationResponse(v *rules.Violation) *ViolationResponse {
	if v == nil {
		return nil
	}
	return &ViolationResponse{
		Message:   v.Reason,
		Rule:      string(v.Rule),
		Hour:      v.Hour,
		Attribute: v.Attribute,
	}
}
