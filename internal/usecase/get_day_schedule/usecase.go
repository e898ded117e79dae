package get_day_schedule

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// UseCase расписание дня: для каждой ячейки бронирование и его положение в блоке
type UseCase struct {
	bookingRepo BookingRepository
	courts      *domain.Courts
	clock       Clock
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	courts *domain.Courts,
	clock Clock,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		courts:      courts,
		clock:       clock,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute строит сетку дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	today := uc.clock.Today()

	date := today
	if req.Date != "" {
		var err error
		if date, err = rules.ValidateDate(req.Date); err != nil {
			return nil, err
		}
	}

	// все записи дня читаются одним снимком
	var existing []*domain.Booking
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		existing, err = uc.bookingRepo.ListByDate(txCtx, date)
		return err
	})
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to get bookings of %s: %v", date, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	resp := buildSchedule(domain.NewDayBookings(date, existing), uc.courts, req.Session, today)

	uc.logger.Info("GetDaySchedule: user=%s, date=%s, bookings=%d", req.Session.UserID, date, len(existing))
	return resp, nil
}

func buildSchedule(day *domain.DayBookings, courts *domain.Courts, session rules.Session, today types.DateString) *Response {
	resp := &Response{
		Date:         day.Date(),
		IsWeekend:    day.Date().IsWeekend(),
		IsPast:       day.Date().IsBefore(today),
		AllowedTypes: rules.AllowedTypes(session.Role),
	}

	for _, court := range courts.All() {
		column := CourtSchedule{Court: court, Cells: make([]Cell, 0, domain.SlotsPerDay)}
		for _, hour := range domain.Hours() {
			cell := Cell{Hour: hour}
			if b := day.At(court.ID, hour); b != nil {
				cell.Booking = b
				cell.Block = day.BlockInfo(court.ID, hour)
				cell.CanModify = session.CanModify(b)
			}
			column.Cells = append(column.Cells, cell)
		}
		resp.Courts = append(resp.Courts, column)
	}

	return resp
}
