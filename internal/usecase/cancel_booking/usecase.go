package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"
)

// UseCase отмена бронирования вместе с его блоком
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, txManager TransactionManager, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute удаляет блок, содержащий бронирование, в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: user=%s, booking=%s, confirmed=%t", req.Session.UserID, req.BookingID, req.Confirmed)

	var block []*domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if err := req.Session.CheckOwnership(booking); err != nil {
			uc.logger.Warn("CancelBooking: user=%s may not cancel booking id=%s of user=%s",
				req.Session.UserID, booking.ID, booking.UserID)
			return err
		}

		existing, err := uc.bookingRepo.ListByDate(txCtx, booking.Date)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to get bookings of %s: %v", booking.Date, err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// все записи блока принадлежат одному владельцу: ключ блока включает пользователя
		block = domain.NewDayBookings(booking.Date, existing).BlockContaining(booking.CourtID, booking.Hour)
		if len(block) == 0 {
			block = []*domain.Booking{booking}
		}

		if len(block) > 1 && !req.Confirmed {
			uc.logger.Info("CancelBooking: booking id=%s is part of a %d-hour block, confirmation required",
				booking.ID, len(block))
			return &ConfirmationRequiredError{BlockLength: len(block)}
		}

		ids := make([]string, 0, len(block))
		for _, b := range block {
			ids = append(ids, b.ID)
		}

		if err := uc.bookingRepo.Delete(txCtx, ids...); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, bookingRepo.ErrConflict):
				return fmt.Errorf("%w: %v", ErrConflict, err)
			}
			uc.logger.Error("CancelBooking: failed to delete block of booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to delete bookings: %v", ErrInternal, err)
		}
		return nil
	})
	if errors.Is(err, txmanager.ErrConflict) {
		uc.logger.Warn("CancelBooking: serialization conflict on commit: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	if err != nil {
		return nil, err
	}

	uc.metrics.BookingsCancelled(len(block))
	uc.logger.Info("CancelBooking: successfully cancelled %d booking(s)", len(block))

	return &Response{Cancelled: block}, nil
}
