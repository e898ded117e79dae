package get_day_schedule

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
	getDaySchedule "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_day_schedule"
)

// DayScheduleResponse HTTP response model
type DayScheduleResponse struct {
	Date         string          `json:"date"`
	IsWeekend    bool            `json:"isWeekend"`
	IsPast       bool            `json:"isPast"`
	AllowedTypes []string        `json:"allowedTypes"`
	Courts       []CourtSchedule `json:"courts"`
}

// CourtSchedule колонка корта
type CourtSchedule struct {
	CourtID int    `json:"courtId"`
	Name    string `json:"name"`
	Cells   []Cell `json:"cells"`
}

// Cell ячейка часа. Для продолжения блока isBlockStart=false и blockLength=0
type Cell struct {
	Hour          int                     `json:"hour"`
	Booking       *models.BookingResponse `json:"booking,omitempty"`
	IsPartOfBlock bool                    `json:"isPartOfBlock"`
	IsBlockStart  bool                    `json:"isBlockStart"`
	BlockLength   int                     `json:"blockLength"`
	CanModify     bool                    `json:"canModify"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySchedule.Response) *DayScheduleResponse {
	out := &DayScheduleResponse{
		Date:         resp.Date.String(),
		IsWeekend:    resp.IsWeekend,
		IsPast:       resp.IsPast,
		AllowedTypes: make([]string, 0, len(resp.AllowedTypes)),
		Courts:       make([]CourtSchedule, 0, len(resp.Courts)),
	}

	for _, t := range resp.AllowedTypes {
		out.AllowedTypes = append(out.AllowedTypes, string(t))
	}

	for _, court := range resp.Courts {
		column := CourtSchedule{
			CourtID: court.Court.ID,
			Name:    court.Court.Name,
			Cells:   make([]Cell, 0, len(court.Cells)),
		}
		for _, c := range court.Cells {
			column.Cells = append(column.Cells, Cell{
				Hour:          c.Hour,
				Booking:       models.FromDomainBooking(c.Booking),
				IsPartOfBlock: c.Block.IsPartOfBlock,
				IsBlockStart:  c.Block.IsBlockStart,
				BlockLength:   c.Block.BlockLength,
				CanModify:     c.CanModify,
			})
		}
		out.Courts = append(out.Courts, column)
	}

	return out
}
