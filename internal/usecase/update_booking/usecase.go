package update_booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
	"github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"
)

// UseCase изменение бронирования владельцем или администратором
type UseCase struct {
	bookingRepo BookingRepository
	engine      RuleEngine
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, engine RuleEngine, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		engine:      engine,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute проверяет права, тип и обязательные атрибуты и перезаписывает бронирование.
// Слот не меняется, поэтому коллизии и квота не перепроверяются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: user=%s, booking=%s, type=%s", req.Session.UserID, req.BookingID, req.Type)

	if err := rules.ValidateType(req.Type, req.Attributes); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if err := req.Session.CheckOwnership(booking); err != nil {
			uc.logger.Warn("UpdateBooking: user=%s may not modify booking id=%s of user=%s",
				req.Session.UserID, booking.ID, booking.UserID)
			return err
		}

		if err := rules.CheckTypeAllowed(req.Session.Role, req.Type); err != nil {
			return uc.engine.Reject(err)
		}
		if err := rules.ValidateAttributes(req.Type, req.Attributes); err != nil {
			return uc.engine.Reject(err)
		}

		booking.Type = req.Type
		booking.SetAttributes(req.Attributes)
		booking.UpdatedAt = uc.engine.Now()

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, bookingRepo.ErrConflict):
				return fmt.Errorf("%w: %v", ErrConflict, err)
			}
			uc.logger.Error("UpdateBooking: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		resp = &Response{Booking: booking}
		return nil
	})
	if errors.Is(err, txmanager.ErrConflict) {
		uc.logger.Warn("UpdateBooking: serialization conflict on commit: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%s", req.BookingID)
	return resp, nil
}
