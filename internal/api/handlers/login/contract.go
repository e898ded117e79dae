package login

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/users"
)

type UserService interface {
	Login(ctx context.Context, email, password string) (*users.LoginResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
