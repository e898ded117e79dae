package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgConflict     = "расписание изменилось, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondInvalidBody(w, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(session))
	if err != nil {
		if handlers.RespondRuleError(w, err) {
			h.logger.Warn("POST /bookings - Rejected: user_id=%s, court=%d, date=%s, start=%d: %v",
				session.UserID, req.CourtID, req.Date, req.StartHour, err)
			return
		}

		switch {
		case errors.Is(err, createBooking.ErrConflict):
			h.logger.Warn("POST /bookings - Concurrent modification: user_id=%s: %v", session.UserID, err)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, court=%d, date=%s, error=%v",
				session.UserID, req.CourtID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: user_id=%s, court=%d, date=%s, hours=%d",
		session.UserID, req.CourtID, req.Date, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
