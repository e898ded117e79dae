package get_block

import "github.com/m04kA/SMC-CourtBookingService/internal/domain"

// Request поиск блока на корте начиная с часа
type Request struct {
	CourtID int
	Date    string
	Hour    int
}

// Response блок, найденный проходом вперёд от Hour, и границы всего блока, содержащего Hour.
// Для свободного слота всё пусто
type Response struct {
	Bookings    []*domain.Booking
	BlockStart  int
	BlockLength int
}
