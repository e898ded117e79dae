package rules

import (
	"strings"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// ValidateType проверяет значения перечислений в запросе
func ValidateType(bookingType domain.BookingType, attrs domain.Attributes) error {
	if !bookingType.IsValid() {
		return invalidInput("unknown booking type %q", bookingType)
	}
	if attrs.VMType != "" && !attrs.VMType.IsValid() {
		return invalidInput("unknown vmType %q", attrs.VMType)
	}
	if bookingType == domain.TypeVM && attrs.VMType == "" {
		return invalidInput("vmType is required for VM bookings")
	}
	if len(attrs.Opponent) > domain.MaxTextLength ||
		len(attrs.Opponent2) > domain.MaxTextLength ||
		len(attrs.Partner) > domain.MaxTextLength ||
		len(attrs.Description) > domain.MaxTextLength {
		return invalidInput("text attributes are limited to %d characters", domain.MaxTextLength)
	}
	return nil
}

// ValidateAttributes проверяет обязательные атрибуты игры чемпионата
// Описание тренировки и соперник в матче необязательны
func ValidateAttributes(bookingType domain.BookingType, attrs domain.Attributes) error {
	if bookingType != domain.TypeVM {
		return nil
	}

	if attrs.VMType.IsTeam() {
		for _, field := range []struct {
			name  string
			value string
		}{
			{"partner", attrs.Partner},
			{"opponent", attrs.Opponent},
			{"opponent2", attrs.Opponent2},
		} {
			if strings.TrimSpace(field.value) == "" {
				return missingAttribute(field.name, "partner, opponent and opponent2 are required for VM doubles and mixed")
			}
		}
		return nil
	}

	if strings.TrimSpace(attrs.Opponent) == "" {
		return missingAttribute("opponent", "opponent is required for VM singles")
	}
	return nil
}
