package handlers

import (
	"net/http"

	"github.com/Dosada05/zone-cup/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: ts}
}

// GetOverview godoc
// @Summary Полное состояние турнира
// @Tags tournament
// @Produce json
// @Success 200 {object} services.Overview
// @Router /overview [get]
func (h *TournamentHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.tournamentService.GetOverview(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err = writeJSON(w, http.StatusOK, overview, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
