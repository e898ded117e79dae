package update_user_role

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

const msgUnauthorized = "требуется авторизация"

// UpdateRoleRequest HTTP request model
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=GUEST MEMBER TRAINER ADMIN"`
	// Confirmed подтверждение снятия собственной роли администратора
	Confirmed bool `json:"confirmed,omitempty"`
}

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/users/{userId}/role
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req UpdateRoleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /users/{id}/role - Invalid request body: %v", err)
		handlers.RespondInvalidBody(w, err)
		return
	}

	user, err := h.service.UpdateRole(r.Context(), session, userID, domain.Role(req.Role), req.Confirmed)
	if err != nil {
		if handlers.RespondUserError(w, err) {
			h.logger.Warn("PATCH /users/{id}/role - Rejected: user_id=%s: %v", userID, err)
			return
		}
		h.logger.Error("PATCH /users/{id}/role - Failed to update role: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /users/{id}/role - Role updated: user_id=%s, role=%s, by=%s", userID, req.Role, session.UserID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainUser(user))
}
