package move_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
	moveBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/move_booking"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgNotFound     = "бронирование не найдено"
	msgConflict     = "расписание изменилось, повторите запрос"
)

type Handler struct {
	useCase MoveBookingUseCase
	logger  Logger
}

func NewHandler(useCase MoveBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/move
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req MoveBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/move - Invalid request body: %v", err)
		handlers.RespondInvalidBody(w, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &moveBooking.Request{
		Session:       session,
		BookingID:     bookingID,
		TargetCourtID: req.TargetCourtID,
		TargetHour:    req.TargetHour,
		WholeBlock:    req.WholeBlock,
	})
	if err != nil {
		if handlers.RespondRuleError(w, err) {
			h.logger.Warn("POST /bookings/{id}/move - Rejected: booking_id=%s, user_id=%s: %v", bookingID, session.UserID, err)
			return
		}

		switch {
		case errors.Is(err, moveBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/move - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, moveBooking.ErrConflict):
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /bookings/{id}/move - Failed to move booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/move - Booking moved successfully: booking_id=%s, court=%d, hour=%d",
		bookingID, req.TargetCourtID, req.TargetHour)
	handlers.RespondJSON(w, http.StatusOK, MoveBookingResponse{
		Moved: models.FromDomainBookingList(result.Moved).Bookings,
	})
}
