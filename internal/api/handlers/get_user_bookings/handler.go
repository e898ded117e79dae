package get_user_bookings

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
)

const (
	msgUnauthorized    = "требуется авторизация"
	msgInvalidUpcoming = "параметр upcoming должен быть true или false"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/me/bookings?upcoming=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Получаем upcoming из query параметров (опционально)
	upcoming := false
	if raw := r.URL.Query().Get("upcoming"); raw != "" {
		var err error
		if upcoming, err = strconv.ParseBool(raw); err != nil {
			h.logger.Warn("GET /users/me/bookings - Invalid upcoming flag: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidUpcoming)
			return
		}
	}

	result, err := h.service.GetUserBookings(r.Context(), &models.GetUserBookingsRequest{
		UserID:   session.UserID,
		Upcoming: upcoming,
	})
	if err != nil {
		h.logger.Error("GET /users/me/bookings - Failed to get bookings: user_id=%s, error=%v", session.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/me/bookings - Bookings retrieved successfully: user_id=%s, count=%d",
		session.UserID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
