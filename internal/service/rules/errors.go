package rules

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput некорректный запрос: час вне диапазона, неверная дата или значение
	ErrInvalidInput = errors.New("rules: invalid input")

	// ErrRuleViolation запрос корректен, но его отклоняет правило бронирования
	ErrRuleViolation = errors.New("rules: booking rule violated")

	// ErrForbidden пользователь не владелец и не администратор
	ErrForbidden = errors.New("rules: not allowed to modify this booking")
)

// Rule правило, отклонившее запрос
type Rule string

const (
	RuleOpeningHours     Rule = "opening_hours"
	RuleSlotTaken        Rule = "slot_taken"
	RuleMissingAttribute Rule = "missing_attribute"
	RuleDailyQuota       Rule = "daily_quota"
	RuleTypeNotAllowed   Rule = "type_not_allowed"
	RulePastDate         Rule = "past_date"
)

// Violation отклонённый запрос с причиной для пользователя
type Violation struct {
	Rule      Rule
	Reason    string
	Hour      int    // час нарушения для коллизий и часов работы
	Attribute string // имя недостающего атрибута
}

func (v *Violation) Error() string {
	return v.Reason
}

// Unwrap любое нарушение совпадает с ErrRuleViolation через errors.Is
func (v *Violation) Unwrap() error {
	return ErrRuleViolation
}

// AsViolation достаёт нарушение из цепочки ошибок
func AsViolation(err error) (*Violation, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// IsRule является ли err нарушением правила rule
func IsRule(err error, rule Rule) bool {
	v, ok := AsViolation(err)
	return ok && v.Rule == rule
}

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// SlotTaken нарушение "слот занят" для часа hour
func SlotTaken(hour int) *Violation {
	return &Violation{
		Rule:   RuleSlotTaken,
		Reason: fmt.Sprintf("slot already booked at %02d:00", hour),
		Hour:   hour,
	}
}

func exceedsOpeningHours(hour int) *Violation {
	return &Violation{
		Rule:   RuleOpeningHours,
		Reason: fmt.Sprintf("booking exceeds opening hours: %02d:00 is after the last slot", hour),
		Hour:   hour,
	}
}

func missingAttribute(attribute, reason string) *Violation {
	return &Violation{Rule: RuleMissingAttribute, Reason: reason, Attribute: attribute}
}

func quotaExceeded() *Violation {
	return &Violation{Rule: RuleDailyQuota, Reason: "max 1 hour Mon–Fri, weekends are unrestricted"}
}

func typeNotAllowed(role, bookingType string) *Violation {
	return &Violation{
		Rule:   RuleTypeNotAllowed,
		Reason: fmt.Sprintf("role %s may not book type %s", role, bookingType),
	}
}

func pastDate(date string) *Violation {
	return &Violation{Rule: RulePastDate, Reason: fmt.Sprintf("date %s is in the past", date)}
}
