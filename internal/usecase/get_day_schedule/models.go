package get_day_schedule

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Request запрос расписания на дату; пустая дата - сегодня
type Request struct {
	Session rules.Session
	Date    string
}

// Response сетка корты × часы на дату
type Response struct {
	Date         types.DateString
	IsWeekend    bool // квота не действует
	IsPast       bool // бронировать и переносить нельзя
	AllowedTypes []domain.BookingType
	Courts       []CourtSchedule
}

// CourtSchedule колонка одного корта
type CourtSchedule struct {
	Court domain.Court
	Cells []Cell
}

// Cell один час корта
type Cell struct {
	Hour      int
	Booking   *domain.Booking // nil, если слот свободен
	Block     domain.BlockInfo
	CanModify bool // пользователь сессии может изменить или отменить бронирование
}
