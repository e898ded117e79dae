package rules

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// QuotaExempt снимается ли дневной лимит будних дней
// Администраторы всегда, тренеры для тренировок и матчей, в выходные все
func QuotaExempt(role domain.Role, bookingType domain.BookingType, date types.DateString) bool {
	switch {
	case role == domain.RoleAdmin:
		return true
	case role == domain.RoleTrainer && (bookingType == domain.TypeTraining || bookingType == domain.TypeMatch):
		return true
	case date.IsWeekend():
		return true
	}
	return false
}

// CheckQuota считает бронирования владельца за день (без exclude) плюс запрошенные часы
func CheckQuota(
	day *domain.DayBookings,
	ownerID string,
	role domain.Role,
	bookingType domain.BookingType,
	requested int,
	exclude map[string]bool,
) error {
	if QuotaExempt(role, bookingType, day.Date()) {
		return nil
	}
	if day.CountForUser(ownerID, exclude)+requested > domain.WeekdayQuotaHours {
		return quotaExceeded()
	}
	return nil
}
