package get_block

import (
	"context"

	getBlock "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_block"
)

type GetBlockUseCase interface {
	Execute(ctx context.Context, req *getBlock.Request) (*getBlock.Response, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
