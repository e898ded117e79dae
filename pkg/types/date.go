package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ErrInvalidDateString возвращается при некорректном формате даты
var ErrInvalidDateString = errors.New("invalid date string format")

// DateString календарная дата в формате YYYY-MM-DD без часового пояса
type DateString string

// NewDateStringFromString парсит и валидирует строку даты
func NewDateStringFromString(s string) (DateString, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateString, s)
	}
	// time.Parse принимает только точный формат, но нормализуем на всякий случай
	return DateString(t.Format(dateLayout)), nil
}

// NewDateString берет календарную дату из времени в его часовом поясе
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(dateLayout))
}

// Validate проверяет формат даты
func (d DateString) Validate() error {
	_, err := NewDateStringFromString(string(d))
	return err
}

// IsZero возвращает true для пустой даты
func (d DateString) IsZero() bool {
	return d == ""
}

func (d DateString) String() string {
	return string(d)
}

// Time возвращает полночь даты в UTC
func (d DateString) Time() time.Time {
	t, _ := time.Parse(dateLayout, string(d))
	return t
}

// Weekday возвращает день недели
func (d DateString) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// IsWeekend суббота или воскресенье
func (d DateString) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsBefore сравнивает даты (формат ISO сортируется лексикографически)
func (d DateString) IsBefore(other DateString) bool {
	return d < other
}

// Value реализует driver.Valuer
func (d DateString) Value() (driver.Value, error) {
	return string(d), nil
}

// Scan реализует sql.Scanner
func (d *DateString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*d = DateString(v)
	case []byte:
		*d = DateString(v)
	case time.Time:
		*d = NewDateString(v)
	case nil:
		*d = ""
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDateString, src)
	}
	return nil
}
