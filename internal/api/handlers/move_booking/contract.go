package move_booking

import (
	"context"

	moveBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/move_booking"
)

type MoveBookingUseCase interface {
	Execute(ctx context.Context, req *moveBooking.Request) (*moveBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
