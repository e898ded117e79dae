package create_booking

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
)

// Request модель запроса на создание бронирования
type Request struct {
	Session    rules.Session      // Кто бронирует
	CourtID    int                // ID корта
	Date       string             // Дата "YYYY-MM-DD"
	StartHour  int                // Первый час (8..21)
	Duration   int                // Количество часов подряд
	Type       domain.BookingType // Тип бронирования
	Attributes domain.Attributes  // Атрибуты типа (VM, матч, тренировка)
}

// Response модель ответа: по одной записи на каждый час, по возрастанию часа
type Response struct {
	Bookings []*domain.Booking
}
