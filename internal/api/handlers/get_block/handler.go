package get_block

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
	getBlock "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_block"
)

const (
	msgInvalidCourtID = "некорректный ID корта"
	msgInvalidHour    = "некорректный час, ожидается число 8..21"
)

type Handler struct {
	useCase GetBlockUseCase
	logger  Logger
}

func NewHandler(useCase GetBlockUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/blocks?date=2026-10-20&hour=10
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := strconv.Atoi(mux.Vars(r)["courtId"])
	if err != nil {
		h.logger.Warn("GET /courts/{id}/blocks - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	query := r.URL.Query()
	hour, err := strconv.Atoi(query.Get("hour"))
	if err != nil {
		h.logger.Warn("GET /courts/{id}/blocks - Invalid hour: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHour)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getBlock.Request{
		CourtID: courtID,
		Date:    query.Get("date"),
		Hour:    hour,
	})
	if err != nil {
		if handlers.RespondRuleError(w, err) {
			return
		}
		h.logger.Error("GET /courts/{id}/blocks - Failed to find block: court=%d, error=%v", courtID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, BlockResponse{
		Bookings:    models.FromDomainBookingList(result.Bookings).Bookings,
		BlockStart:  result.BlockStart,
		BlockLength: result.BlockLength,
	})
}
