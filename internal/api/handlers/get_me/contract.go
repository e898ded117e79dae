package get_me

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
)

type UserService interface {
	Me(ctx context.Context, session rules.Session) (*domain.User, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}
