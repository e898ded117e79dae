package check_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
)

// UseCase проверка бронирования без записи
type UseCase struct {
	bookingRepo BookingRepository
	engine      RuleEngine
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, engine RuleEngine, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		engine:      engine,
		logger:      logger,
	}
}

// Execute проверяет запрос теми же правилами, что и создание.
// Нарушение правил возвращается в ответе, некорректный ввод - ошибкой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	date, err := rules.ValidateDate(req.Date)
	if err != nil {
		return nil, err
	}

	existing, err := uc.bookingRepo.ListByDate(ctx, date)
	if err != nil {
		uc.logger.Error("CheckBooking: failed to get bookings of %s: %v", date, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	err = uc.engine.CanCreate(req.Session, domain.NewDayBookings(date, existing), rules.CreateCheck{
		CourtID:   req.CourtID,
		Date:      date,
		StartHour: req.StartHour,
		Duration:  req.Duration,
		Type:      req.Type,
		Attrs:     req.Attributes,
	})
	if err == nil {
		return &Response{Allowed: true}, nil
	}

	if v, ok := rules.AsViolation(err); ok {
		uc.logger.Info("CheckBooking: user=%s court=%d date=%s start=%d: %s",
			req.Session.UserID, req.CourtID, date, req.StartHour, v.Rule)
		return &Response{Allowed: false, Violation: v}, nil
	}
	return nil, err
}
