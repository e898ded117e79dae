package rules

import "github.com/m04kA/SMC-CourtBookingService/internal/domain"

var allowedTypes = map[domain.Role][]domain.BookingType{
	domain.RoleAdmin:   domain.BookingTypes,
	domain.RoleTrainer: {domain.TypeFree, domain.TypeVM, domain.TypeTraining, domain.TypeMatch},
	domain.RoleMember:  {domain.TypeFree, domain.TypeVM},
	domain.RoleGuest:   {},
}

// AllowedTypes типы бронирований, которые может создавать роль
func AllowedTypes(role domain.Role) []domain.BookingType {
	types := allowedTypes[role]
	out := make([]domain.BookingType, len(types))
	copy(out, types)
	return out
}

// IsTypeAllowed может ли роль создать бронирование типа bookingType
func IsTypeAllowed(role domain.Role, bookingType domain.BookingType) bool {
	for _, t := range allowedTypes[role] {
		if t == bookingType {
			return true
		}
	}
	return false
}

// CheckTypeAllowed возвращает нарушение, если роли тип недоступен
func CheckTypeAllowed(role domain.Role, bookingType domain.BookingType) error {
	if !IsTypeAllowed(role, bookingType) {
		return typeNotAllowed(string(role), string(bookingType))
	}
	return nil
}
