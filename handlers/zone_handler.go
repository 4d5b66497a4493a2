package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/zone-cup/services"
)

type ZoneHandler struct {
	assignmentService services.AssignmentService
	seedingService    services.SeedingService
	standingsService  services.StandingsService
}

func NewZoneHandler(as services.AssignmentService, ss services.SeedingService, sts services.StandingsService) *ZoneHandler {
	return &ZoneHandler{
		assignmentService: as,
		seedingService:    ss,
		standingsService:  sts,
	}
}

// ListZones godoc
// @Summary Зоны с составами
// @Tags zones
// @Produce json
// @Success 200 {object} map[string]interface{} "zones"
// @Router /zones [get]
func (h *ZoneHandler) ListZones(w http.ResponseWriter, r *http.Request) {
	zones, err := h.assignmentService.ListZones(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err = writeJSON(w, http.StatusOK, jsonResponse{"zones": zones}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AutoAssign godoc
// @Summary Случайно распределить все команды по зонам
// @Tags zones
// @Produce json
// @Success 200 {object} services.AutoAssignResult
// @Failure 409 {object} map[string]string "Группы уже разыграны"
// @Security BearerAuth
// @Router /zones/auto-assign [post]
func (h *ZoneHandler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	result, err := h.assignmentService.AutoAssign(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err = writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// MoveTeam godoc
// @Summary Перенести команду в другую зону
// @Tags zones
// @Description Если целевая зона заполнена, команда меняется местами с swapTeamId или с первой командой зоны.
// @Accept json
// @Produce json
// @Param input body services.MoveTeamInput true "Перенос"
// @Success 200 {object} services.MoveTeamResult
// @Failure 400 {object} map[string]string "Некорректный перенос"
// @Failure 404 {object} map[string]string "Зона или команда не найдена"
// @Failure 409 {object} map[string]string "Группы уже разыграны"
// @Security BearerAuth
// @Router /zones/move [post]
func (h *ZoneHandler) MoveTeam(w http.ResponseWriter, r *http.Request) {
	var input services.MoveTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.assignmentService.MoveTeam(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err = writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Reset godoc
// @Summary Сбросить зоны и групповые матчи
// @Tags zones
// @Success 204
// @Security BearerAuth
// @Router /zones/reset [post]
func (h *ZoneHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.assignmentService.Reset(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Seed godoc
// @Summary Жеребьевка: сгенерировать матчи групп
// @Tags zones
// @Produce json
// @Success 201 {object} services.SeedResult
// @Failure 409 {object} map[string]string "Группы уже разыграны"
// @Failure 422 {object} map[string]string "Недостаточно полных зон"
// @Security BearerAuth
// @Router /zones/seed [post]
func (h *ZoneHandler) Seed(w http.ResponseWriter, r *http.Request) {
	result, err := h.seedingService.SeedGroups(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err = writeJSON(w, http.StatusCreated, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ZoneHandler) ZoneStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.standingsService.GetZoneStandings(r.Context(), chi.URLParam(r, "zoneID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err = writeJSON(w, http.StatusOK, standings, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ZoneHandler) AllStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.standingsService.GetAllStandings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err = writeJSON(w, http.StatusOK, jsonResponse{"zones": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
