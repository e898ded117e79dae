package rules

import "github.com/m04kA/SMC-CourtBookingService/internal/domain"

// Session действующий пользователь, восстановленный из проверенного токена
type Session struct {
	UserID   string
	UserName string
	Role     domain.Role
}

// IsAdmin true для администраторов
func (s Session) IsAdmin() bool {
	return s.Role == domain.RoleAdmin
}

// CanModify изменять бронирование может владелец или администратор
func (s Session) CanModify(b *domain.Booking) bool {
	return s.IsAdmin() || b.IsOwnedBy(s.UserID)
}

// CheckOwnership возвращает ErrForbidden, если сессии нельзя изменять b
func (s Session) CheckOwnership(b *domain.Booking) error {
	if !s.CanModify(b) {
		return ErrForbidden
	}
	return nil
}
