package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
	cancelBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/cancel_booking"
)

const (
	msgUnauthorized   = "требуется авторизация"
	msgInvalidConfirm = "параметр confirm должен быть true или false"
	msgNotFound       = "бронирование не найдено"
	msgConflict       = "расписание изменилось, повторите запрос"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{bookingId}?confirm=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	confirmed := false
	if raw := r.URL.Query().Get("confirm"); raw != "" {
		var err error
		if confirmed, err = strconv.ParseBool(raw); err != nil {
			h.logger.Warn("DELETE /bookings/{id} - Invalid confirm flag: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidConfirm)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{
		Session:   session,
		BookingID: bookingID,
		Confirmed: confirmed,
	})
	if err != nil {
		var confirmErr *cancelBooking.ConfirmationRequiredError
		switch {
		case errors.As(err, &confirmErr):
			handlers.RespondJSON(w, http.StatusConflict, ConfirmationRequiredResponse{
				Message:     confirmErr.Error(),
				BlockLength: confirmErr.BlockLength,
			})

		case handlers.RespondRuleError(w, err):
			h.logger.Warn("DELETE /bookings/{id} - Rejected: booking_id=%s, user_id=%s: %v", bookingID, session.UserID, err)

		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrConflict):
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("DELETE /bookings/{id} - Failed to cancel booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking cancelled successfully: booking_id=%s, user_id=%s, hours=%d",
		bookingID, session.UserID, len(result.Cancelled))
	handlers.RespondJSON(w, http.StatusOK, CancelBookingResponse{
		Cancelled: models.FromDomainBookingList(result.Cancelled).Bookings,
	})
}
