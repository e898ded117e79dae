package update_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
	updateBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/update_booking"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgNotFound     = "бронирование не найдено"
	msgConflict     = "расписание изменилось, повторите запрос"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondInvalidBody(w, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &updateBooking.Request{
		Session:    session,
		BookingID:  bookingID,
		Type:       domain.BookingType(req.Type),
		Attributes: req.BookingAttributes.ToDomain(),
	})
	if err != nil {
		if handlers.RespondRuleError(w, err) {
			h.logger.Warn("PUT /bookings/{id} - Rejected: booking_id=%s, user_id=%s: %v", bookingID, session.UserID, err)
			return
		}

		switch {
		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBooking.ErrConflict):
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking updated successfully: booking_id=%s, user_id=%s", bookingID, session.UserID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(result.Booking))
}
