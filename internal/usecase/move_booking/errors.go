package move_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("move_booking: booking not found")

	// ErrConflict конкурентная транзакция изменила расписание, запрос можно повторить
	ErrConflict = errors.New("move_booking: concurrent modification, retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("move_booking: internal error")
)
