package get_block

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
)

// UseCase поиск блока бронирований
type UseCase struct {
	bookingRepo BookingRepository
	validator   SlotValidator
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, validator SlotValidator, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		validator:   validator,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute возвращает блок, начинающийся в (корт, дата, час)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	date, err := rules.ValidateDate(req.Date)
	if err != nil {
		return nil, err
	}
	if err := uc.validator.ValidateSlot(req.CourtID, date, req.Hour); err != nil {
		return nil, err
	}

	var existing []*domain.Booking
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		existing, err = uc.bookingRepo.ListByDate(txCtx, date)
		return err
	})
	if err != nil {
		uc.logger.Error("GetBlock: failed to get bookings of %s: %v", date, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	day := domain.NewDayBookings(date, existing)
	resp := &Response{
		Bookings: day.FindBlock(req.CourtID, req.Hour),
	}
	if resp.Bookings == nil {
		resp.Bookings = []*domain.Booking{}
	}
	if whole := day.BlockContaining(req.CourtID, req.Hour); len(whole) > 0 {
		resp.BlockStart = whole[0].Hour
		resp.BlockLength = len(whole)
	}

	return resp, nil
}
