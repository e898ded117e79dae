package move_booking

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
	"github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"
)

// UseCase перенос бронирования. Бронирование сохраняет свой ID
type UseCase struct {
	bookingRepo BookingRepository
	engine      RuleEngine
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	engine RuleEngine,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		engine:      engine,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute проверяет целевой слот правилами создания (с типом исходного бронирования,
// исходные записи исключены из коллизий и квоты) и переносит в одной транзакции.
// При любой ошибке исходное бронирование остаётся на месте
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MoveBooking: user=%s, booking=%s, target court=%d hour=%d, wholeBlock=%t",
		req.Session.UserID, req.BookingID, req.TargetCourtID, req.TargetHour, req.WholeBlock)

	// адрес цели проверяется до обращения к хранилищу
	if err := uc.engine.ValidateTarget(req.TargetCourtID, req.TargetHour); err != nil {
		uc.logger.Warn("MoveBooking: invalid target: %v", err)
		return nil, err
	}

	var moved []*domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		source, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("MoveBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if err := req.Session.CheckOwnership(source); err != nil {
			uc.logger.Warn("MoveBooking: user=%s may not move booking id=%s of user=%s",
				req.Session.UserID, source.ID, source.UserID)
			return err
		}

		existing, err := uc.bookingRepo.ListByDate(txCtx, source.Date)
		if err != nil {
			uc.logger.Error("MoveBooking: failed to get bookings of %s: %v", source.Date, err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
		day := domain.NewDayBookings(source.Date, existing)

		group := []*domain.Booking{source}
		if req.WholeBlock {
			if block := day.BlockContaining(source.CourtID, source.Hour); len(block) > 0 {
				group = block
			}
		}

		ids := make([]string, 0, len(group))
		for _, b := range group {
			ids = append(ids, b.ID)
		}

		err = uc.engine.CanCreate(req.Session, day, rules.CreateCheck{
			CourtID:   req.TargetCourtID,
			Date:      source.Date,
			StartHour: req.TargetHour,
			Duration:  len(group),
			Type:      source.Type,
			Attrs:     source.Attributes(),
			OwnerID:   source.UserID,
			Exclude:   ids,
		})
		if err != nil {
			uc.logger.Warn("MoveBooking: rejected: %v", err)
			return err
		}

		now := uc.engine.Now()
		offset := req.TargetHour - group[0].Hour
		for _, b := range group {
			b.CourtID = req.TargetCourtID
			b.Hour += offset
			b.UpdatedAt = now
		}

		// сдвиг блока по тому же корту: пишем сначала часы, которые уходят на свободное место,
		// чтобы уникальный индекс не увидел промежуточного пересечения со своими же записями
		ordered := make([]*domain.Booking, len(group))
		copy(ordered, group)
		if offset > 0 {
			sort.Slice(ordered, func(i, j int) bool { return ordered[i].Hour > ordered[j].Hour })
		}

		for _, b := range ordered {
			if err := uc.bookingRepo.Update(txCtx, b); err != nil {
				switch {
				case errors.Is(err, bookingRepo.ErrSlotTaken):
					uc.logger.Warn("MoveBooking: slot taken concurrently: %v", err)
					return uc.engine.Reject(rules.SlotTaken(b.Hour))
				case errors.Is(err, bookingRepo.ErrConflict):
					return fmt.Errorf("%w: %v", ErrConflict, err)
				case errors.Is(err, bookingRepo.ErrBookingNotFound):
					return ErrBookingNotFound
				}
				uc.logger.Error("MoveBooking: failed to update booking id=%s: %v", b.ID, err)
				return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
			}
		}

		moved = group
		return nil
	})
	if errors.Is(err, txmanager.ErrConflict) {
		uc.logger.Warn("MoveBooking: serialization conflict on commit: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	if err != nil {
		return nil, err
	}

	uc.metrics.BookingsMoved(len(moved))
	uc.logger.Info("MoveBooking: successfully moved %d booking(s) to court=%d hour=%d",
		len(moved), req.TargetCourtID, req.TargetHour)

	return &Response{Moved: moved}, nil
}
