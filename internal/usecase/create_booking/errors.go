package create_booking

import "errors"

var (
	// ErrConflict конкурентная транзакция изменила расписание, запрос можно повторить
	ErrConflict = errors.New("create_booking: concurrent modification, retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
