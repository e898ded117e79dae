package cancel_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrConfirmationRequired блок длиннее одного часа удаляется только с подтверждением
	ErrConfirmationRequired = errors.New("cancel_booking: confirmation required")

	// ErrConflict конкурентная транзакция изменила расписание, запрос можно повторить
	ErrConflict = errors.New("cancel_booking: concurrent modification, retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)

// ConfirmationRequiredError содержит длину блока, который будет удалён целиком
type ConfirmationRequiredError struct {
	BlockLength int
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("booking is part of a %d-hour block, confirm to cancel the whole block", e.BlockLength)
}

func (e *ConfirmationRequiredError) Unwrap() error {
	return ErrConfirmationRequired
}
