package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/users"
)

// UserResponse пользователь без хеша пароля
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainUser конвертирует domain модель в DTO
func FromDomainUser(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// FromDomainUsers конвертирует список пользователей
func FromDomainUsers(list []*domain.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, FromDomainUser(u))
	}
	return out
}

// RespondUserError отвечает на ошибки сервиса пользователей.
// Возвращает false для внутренних ошибок, их логирует и обрабатывает вызывающий
func RespondUserError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, users.ErrInvalidInput):
		RespondBadRequest(w, strings.TrimPrefix(err.Error(), users.ErrInvalidInput.Error()+": "))
	case errors.Is(err, users.ErrInvalidCredentials):
		RespondUnauthorized(w, "неверный email или пароль")
	case errors.Is(err, users.ErrUnauthorized):
		RespondUnauthorized(w, "требуется авторизация")
	case errors.Is(err, users.ErrAccountNotApproved):
		RespondForbidden(w, "учётная запись не подтверждена администратором")
	case errors.Is(err, users.ErrForbidden):
		RespondForbidden(w, "доступно только администратору")
	case errors.Is(err, users.ErrSelfDeletion):
		RespondForbidden(w, "нельзя удалить собственную учётную запись")
	case errors.Is(err, users.ErrUserNotFound):
		RespondNotFound(w, "пользователь не найден")
	case errors.Is(err, users.ErrEmailTaken):
		RespondConflict(w, "email уже зарегистрирован")
	case errors.Is(err, users.ErrSelfDemotion):
		RespondConflict(w, "снятие собственной роли администратора требует подтверждения")
	default:
		return false
	}
	return true
}
