package delete_user

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
)

const msgUnauthorized = "требуется авторизация"

// DeleteUserResponse сколько бронирований удалено вместе с пользователем
type DeleteUserResponse struct {
	DeletedBookings int `json:"deletedBookings"`
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

// Handle DELETE /api/v1/users/{userId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.Delete(r.Context(), session, userID)
	if err != nil {
		if handlers.RespondUserError(w, err) {
			h.logger.Warn("DELETE /users/{id} - Rejected: user_id=%s: %v", userID, err)
			return
		}
		h.logger.Error("DELETE /users/{id} - Failed to delete user: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /users/{id} - User deleted: user_id=%s, bookings=%d, by=%s",
		userID, result.DeletedBookings, session.UserID)
	handlers.RespondJSON(w, http.StatusOK, DeleteUserResponse{DeletedBookings: result.DeletedBookings})
}
