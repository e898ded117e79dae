package rules

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// MetricsRecorder счётчик отклонённых запросов
type MetricsRecorder interface {
	RuleViolation(rule string)
}

// CreateCheck запрос на проверку возможности бронирования
type CreateCheck struct {
	CourtID   int
	Date      types.DateString
	StartHour int
	Duration  int
	Type      domain.BookingType
	Attrs     domain.Attributes

	// OwnerID владелец, чья дневная квота проверяется; пусто - пользователь сессии
	OwnerID string
	// Exclude бронирования, которые не учитываются ни в коллизиях, ни в квоте
	// (редактируемое или переносимое бронирование)
	Exclude []string
}

// Engine проверяет запросы на бронирование: часы работы, коллизии, права роли,
// обязательные атрибуты и дневную квоту
type Engine struct {
	courts       *domain.Courts
	location     *time.Location
	timeProvider TimeProvider
	metrics      MetricsRecorder
}

// NewEngine создает движок правил
// location - часовой пояс клуба, в нём определяется "сегодня"
func NewEngine(courts *domain.Courts, location *time.Location, metrics MetricsRecorder) *Engine {
	if location == nil {
		location = time.UTC
	}
	return &Engine{
		courts:       courts,
		location:     location,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (e *Engine) WithTimeProvider(tp TimeProvider) *Engine {
	e.timeProvider = tp
	return e
}

// Courts каталог кортов
func (e *Engine) Courts() *domain.Courts {
	return e.courts
}

// Now текущее время
func (e *Engine) Now() time.Time {
	return e.timeProvider.Now()
}

// Today текущая дата в часовом поясе клуба
func (e *Engine) Today() types.DateString {
	return types.NewDateString(e.timeProvider.Now().In(e.location))
}

// ValidateDate парсит дату запроса
func ValidateDate(raw string) (types.DateString, error) {
	date, err := types.NewDateStringFromString(raw)
	if err != nil {
		return "", invalidInput("date must be YYYY-MM-DD: %q", raw)
	}
	return date, nil
}

// ValidateTarget проверяет корт из каталога и час 8..21
func (e *Engine) ValidateTarget(courtID, hour int) error {
	if !e.courts.Exists(courtID) {
		return invalidInput("unknown court %d", courtID)
	}
	if !domain.ValidHour(hour) {
		return invalidInput("hour must be between %d and %d, got %d", domain.OpeningHour, domain.ClosingHour, hour)
	}
	return nil
}

// ValidateSlot проверяет адрес слота: корт, дата и час
func (e *Engine) ValidateSlot(courtID int, date types.DateString, hour int) error {
	if err := date.Validate(); err != nil {
		return invalidInput("date must be YYYY-MM-DD: %q", date)
	}
	return e.ValidateTarget(courtID, hour)
}

// ValidateRequest проверки, не требующие данных хранилища
func (e *Engine) ValidateRequest(c CreateCheck) error {
	if err := e.ValidateSlot(c.CourtID, c.Date, c.StartHour); err != nil {
		return err
	}
	// верхней границы нет: выход за 21:00 отклоняет правило часов работы
	if c.Duration < 1 {
		return invalidInput("duration must be at least 1 hour, got %d", c.Duration)
	}
	return ValidateType(c.Type, c.Attrs)
}

// CheckNotPast бронировать можно начиная с сегодняшнего дня
func (e *Engine) CheckNotPast(date types.DateString) error {
	if date.IsBefore(e.Today()) {
		return e.reject(pastDate(date.String()))
	}
	return nil
}

// CanCreate проверяет, можно ли создать бронирование на day
// Порядок: валидация → прошедшая дата → часы работы → коллизии → роль → атрибуты → квота
func (e *Engine) CanCreate(session Session, day *domain.DayBookings, c CreateCheck) error {
	if err := e.ValidateRequest(c); err != nil {
		return err
	}
	if day.Date() != c.Date {
		return invalidInput("bookings of %s loaded for a request on %s", day.Date(), c.Date)
	}

	if err := e.CheckNotPast(c.Date); err != nil {
		return err
	}

	lastHour := c.StartHour + c.Duration - 1
	if lastHour > domain.ClosingHour {
		return e.reject(exceedsOpeningHours(lastHour))
	}

	exclude := make(map[string]bool, len(c.Exclude))
	for _, id := range c.Exclude {
		exclude[id] = true
	}

	for h := c.StartHour; h <= lastHour; h++ {
		if existing := day.At(c.CourtID, h); existing != nil && !exclude[existing.ID] {
			return e.reject(SlotTaken(h))
		}
	}

	if err := CheckTypeAllowed(session.Role, c.Type); err != nil {
		return e.reject(err)
	}

	if err := ValidateAttributes(c.Type, c.Attrs); err != nil {
		return e.reject(err)
	}

	owner := c.OwnerID
	if owner == "" {
		owner = session.UserID
	}
	if err := CheckQuota(day, owner, session.Role, c.Type, c.Duration, exclude); err != nil {
		return e.reject(err)
	}

	return nil
}

// reject учитывает нарушение в метриках и возвращает его
func (e *Engine) reject(err error) error {
	if v, ok := AsViolation(err); ok && e.metrics != nil {
		e.metrics.RuleViolation(string(v.Rule))
	}
	return err
}

// Reject публичный вариант reject для нарушений, найденных вне CanCreate
func (e *Engine) Reject(err error) error {
	return e.reject(err)
}
