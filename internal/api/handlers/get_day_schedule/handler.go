package get_day_schedule

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	getDaySchedule "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_day_schedule"
)

const msgUnauthorized = "требуется авторизация"

type Handler struct {
	useCase GetDayScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetDayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule?date=2026-10-20
// Без даты возвращается расписание на сегодня
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	date := r.URL.Query().Get("date")

	result, err := h.useCase.Execute(r.Context(), &getDaySchedule.Request{
		Session: session,
		Date:    date,
	})
	if err != nil {
		if handlers.RespondRuleError(w, err) {
			h.logger.Warn("GET /schedule - Invalid date: %q", date)
			return
		}
		h.logger.Error("GET /schedule - Failed to build schedule: date=%s, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
