package login

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
)

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

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondInvalidBody(w, err)
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if handlers.RespondUserError(w, err) {
			h.logger.Warn("POST /auth/login - Rejected: %v", err)
			return
		}
		h.logger.Error("POST /auth/login - Failed to log in: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /auth/login - User logged in: user_id=%s", result.User.ID)
	handlers.RespondJSON(w, http.StatusOK, LoginResponse{
		Token: result.Token,
		User:  handlers.FromDomainUser(result.User),
	})
}
