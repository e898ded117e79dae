package check_booking

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
)

// Request запрос на предварительную проверку бронирования
type Request struct {
	Session    rules.Session
	CourtID    int
	Date       string
	StartHour  int
	Duration   int
	Type       domain.BookingType
	Attributes domain.Attributes
}

// Response результат проверки. Violation пусто, если бронирование возможно
type Response struct {
	Allowed   bool
	Violation *rules.Violation
}
