package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgInvalidBody   = "некорректное тело запроса"
)

// ErrInvalidBody тело запроса не декодируется или не проходит валидацию
var ErrInvalidBody = errors.New("handlers: invalid request body")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Message string `json:"message"`
}

// ViolationResponse отказ правил бронирования
type ViolationResponse struct {
	Message   string `json:"message"`
	Rule      string `json:"rule"`
	Hour      int    `json:"hour,omitempty"`
	Attribute string `json:"attribute,omitempty"`
}

// RespondJSON пишет ответ в JSON
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError ответ с сообщением об ошибке
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// DecodeJSON декодирует тело запроса и проверяет теги validate
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("%w: empty body", ErrInvalidBody)
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	if err := validate.Struct(v); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return fmt.Errorf("%w: %s", ErrInvalidBody, describe(validationErrs))
		}
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}

// describe собирает ошибки валидатора в строку вида "email: email, password: min"
func describe(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field()+": "+e.Tag())
	}
	return strings.Join(parts, ", ")
}

// RespondInvalidBody 400 с причиной ошибки декодирования
func RespondInvalidBody(w http.ResponseWriter, err error) {
	msg := strings.TrimPrefix(err.Error(), ErrInvalidBody.Error()+": ")
	RespondBadRequest(w, msgInvalidBody+": "+msg)
}

// RespondRuleError отвечает на ошибки правил бронирования.
// Возвращает false, если err не относится к правилам и его нужно обработать вызывающему
func RespondRuleError(w http.ResponseWriter, err error) bool {
	if v, ok := rules.AsViolation(err); ok {
		status := http.StatusUnprocessableEntity
		if v.Rule == rules.RuleSlotTaken {
			status = http.StatusConflict
		}
		RespondJSON(w, status, NewViolationResponse(v))
		return true
	}

	switch {
	case errors.Is(err, rules.ErrInvalidInput):
		RespondBadRequest(w, strings.TrimPrefix(err.Error(), rules.ErrInvalidInput.Error()+": "))
	case errors.Is(err, rules.ErrForbidden):
		RespondForbidden(w, "изменять бронирование может только владелец или администратор")
	default:
		return false
	}
	return true
}
