package check_booking

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
)

const msgUnauthorized = "требуется авторизация"

type Handler struct {
	useCase CheckBookingUseCase
	logger  Logger
}

func NewHandler(useCase CheckBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/check
// Нарушение правил - это штатный ответ 200 с allowed=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CheckBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/check - Invalid request body: %v", err)
		handlers.RespondInvalidBody(w, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(session))
	if err != nil {
		if handlers.RespondRuleError(w, err) {
			return
		}
		h.logger.Error("POST /bookings/check - Failed to check booking: user_id=%s, error=%v", session.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CheckBookingResponse{
		Allowed:   result.Allowed,
		Violation: handlers.NewViolationResponse(result.Violation),
	})
}
