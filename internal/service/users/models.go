package users

import "github.com/m04kA/SMC-CourtBookingService/internal/domain"

// RegisterRequest регистрация нового участника
type RegisterRequest struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	PasswordConfirm string
}

// LoginResult токен и пользователь после успешного входа
type LoginResult struct {
	Token string
	User  *domain.User
}

// DeleteResult результат удаления пользователя
type DeleteResult struct {
	DeletedBookings int
}
