package update_user_status

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

const msgUnauthorized = "требуется авторизация"

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED"`
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

// Handle PATCH /api/v1/users/{userId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /users/{id}/status - Invalid request body: %v", err)
		handlers.RespondInvalidBody(w, err)
		return
	}

	user, err := h.service.UpdateStatus(r.Context(), session, userID, domain.AccountStatus(req.Status))
	if err != nil {
		if handlers.RespondUserError(w, err) {
			h.logger.Warn("PATCH /users/{id}/status - Rejected: user_id=%s: %v", userID, err)
			return
		}
		h.logger.Error("PATCH /users/{id}/status - Failed to update status: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /users/{id}/status - Status updated: user_id=%s, status=%s, by=%s", userID, req.Status, session.UserID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainUser(user))
}
