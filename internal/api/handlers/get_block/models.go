package get_block

import "github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"

// BlockResponse блок от запрошенного часа и границы всего блока
type BlockResponse struct {
	Bookings    []models.BookingResponse `json:"bookings"`
	BlockStart  int                      `json:"blockStart,omitempty"`
	BlockLength int                      `json:"blockLength"`
}
