package get_courts

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
)

// CourtResponse HTTP response model
type CourtResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Handler struct {
	courts CourtCatalog
}

func NewHandler(courts CourtCatalog) *Handler {
	return &Handler{courts: courts}
}

// Handle GET /api/v1/courts
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	all := h.courts.All()
	resp := make([]CourtResponse, 0, len(all))
	for _, c := range all {
		resp = append(resp, CourtResponse{ID: c.ID, Name: c.Name})
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}
