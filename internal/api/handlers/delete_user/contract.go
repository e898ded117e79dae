package delete_user

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/users"
)

type UserService interface {
	Delete(ctx context.Context, session rules.Session, userID string) (*users.DeleteResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
