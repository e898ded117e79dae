package login

import "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"

// LoginRequest HTTP request model
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse токен для заголовка Authorization: Bearer
type LoginResponse struct {
	Token string                 `json:"token"`
	User  *handlers.UserResponse `json:"user"`
}
