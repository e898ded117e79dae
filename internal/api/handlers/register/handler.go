package register

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

// Handle POST /api/v1/auth/register
// Новый пользователь получает роль MEMBER и ждёт подтверждения администратора
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/register - Invalid request body: %v", err)
		handlers.RespondInvalidBody(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), req.ToServiceRequest())
	if err != nil {
		if handlers.RespondUserError(w, err) {
			h.logger.Warn("POST /auth/register - Rejected: %v", err)
			return
		}
		h.logger.Error("POST /auth/register - Failed to register user: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /auth/register - User registered: user_id=%s", user.ID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromDomainUser(user))
}
