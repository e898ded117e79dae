package register

import "github.com/m04kA/SMC-CourtBookingService/internal/service/users"

// RegisterRequest HTTP request model
type RegisterRequest struct {
	FirstName       string `json:"firstName" validate:"required,max=100"`
	LastName        string `json:"lastName" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RegisterRequest) ToServiceRequest() *users.RegisterRequest {
	return &users.RegisterRequest{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		Password:        r.Password,
		PasswordConfirm: r.PasswordConfirm,
	}
}
