package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
	"github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования (одного часа или блока из нескольких часов)
type UseCase struct {
	bookingRepo BookingRepository
	engine      RuleEngine
	txManager   TransactionManager
	metrics     Metrics
	newID       IDGenerator
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
		newID:       uuid.NewString,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования.
// Чтение дня, проверка правил и запись выполняются в одной сериализуемой транзакции:
// все часы создаются либо ни один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, role=%s, court=%d, date=%s, start=%d, duration=%d, type=%s",
		req.Session.UserID, req.Session.Role, req.CourtID, req.Date, req.StartHour, req.Duration, req.Type)

	date, err := rules.ValidateDate(req.Date)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	check := rules.CreateCheck{
		CourtID:   req.CourtID,
		Date:      date,
		StartHour: req.StartHour,
		Duration:  req.Duration,
		Type:      req.Type,
		Attrs:     req.Attributes,
	}

	var created []*domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.bookingRepo.ListByDate(txCtx, date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings of %s: %v", date, err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		day := domain.NewDayBookings(date, existing)
		if err := uc.engine.CanCreate(req.Session, day, check); err != nil {
			uc.logger.Warn("CreateBooking: rejected: %v", err)
			return err
		}

		now := uc.engine.Now()
		bookings := make([]*domain.Booking, 0, req.Duration)
		for h := req.StartHour; h < req.StartHour+req.Duration; h++ {
			b := &domain.Booking{
				ID:        uc.newID(),
				CourtID:   req.CourtID,
				UserID:    req.Session.UserID,
				UserName:  req.Session.UserName,
				Date:      date,
				Hour:      h,
				Type:      req.Type,
				CreatedAt: now,
				UpdatedAt: now,
			}
			b.SetAttributes(req.Attributes)
			bookings = append(bookings, b)
		}

		if err := uc.bookingRepo.Create(txCtx, bookings); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrSlotTaken):
				// проиграли гонку конкурентной транзакции
				uc.logger.Warn("CreateBooking: slot taken concurrently: %v", err)
				return uc.engine.Reject(rules.SlotTaken(req.StartHour))
			case errors.Is(err, bookingRepo.ErrConflict):
				uc.logger.Warn("CreateBooking: serialization conflict: %v", err)
				return fmt.Errorf("%w: %v", ErrConflict, err)
			}
			uc.logger.Error("CreateBooking: failed to create bookings: %v", err)
			return fmt.Errorf("%w: failed to create bookings: %v", ErrInternal, err)
		}

		created = bookings
		return nil
	})

	if errors.Is(err, txmanager.ErrConflict) {
		uc.logger.Warn("CreateBooking: serialization conflict on commit: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	if err != nil {
		return nil, err
	}

	uc.metrics.BookingsCreated(string(req.Type), len(created))
	uc.logger.Info("CreateBooking: successfully created %d booking(s) starting id=%s", len(created), created[0].ID)

	return &Response{Bookings: created}, nil
}
