package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/zone-cup/models"
	"github.com/Dosada05/zone-cup/services"
)

type FixtureHandler struct {
	matchService   services.MatchService
	playoffService services.PlayoffService
}

func NewFixtureHandler(ms services.MatchService, ps services.PlayoffService) *FixtureHandler {
	return &FixtureHandler{
		matchService:   ms,
		playoffService: ps,
	}
}

type resultRequest struct {
	Score1 *int `json:"score1"`
	Score2 *int `json:"score2"`
}

type statusRequest struct {
	Status models.FixtureStatus `json:"status"`
}

// zoneFilter читает необязательный параметр ?zone_id=.
func zoneFilter(r *http.Request) *string {
	if zoneID := r.URL.Query().Get("zone_id"); zoneID != "" {
		return &zoneID
	}
	return nil
}

// ListFixtures godoc
// @Summary Матчи группового этапа
// @Tags fixtures
// @Produce json
// @Param zone_id query string false "Фильтр по зоне"
// @Success 200 {object} map[string]interface{} "fixtures"
// @Router /fixtures [get]
func (h *FixtureHandler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	fixtures, err := h.matchService.ListFixtures(r.Context(), zoneFilter(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err = writeJSON(w, http.StatusOK, jsonResponse{"fixtures": fixtures}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordResult godoc
// @Summary Записать результат матча
// @Tags fixtures
// @Description Работает для групповых матчей и плей-офф. Матч переходит в статус completed.
// @Accept json
// @Produce json
// @Param fixtureID path string true "Fixture ID"
// @Param input body resultRequest true "Счет"
// @Success 200 {object} services.FixtureUpdate
// @Failure 400 {object} map[string]string "Некорректный счет"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Failure 409 {object} map[string]string "Команды матча еще не определены"
// @Security BearerAuth
// @Router /fixtures/{fixtureID}/result [put]
func (h *FixtureHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	var input resultRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Score1 == nil || input.Score2 == nil {
		badRequestResponse(w, r, errors.New("score1 and score2 are required"))
		return
	}

	update, err := h.matchService.RecordResult(r.Context(), chi.URLParam(r, "fixtureID"), *input.Score1, *input.Score2)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err = writeJSON(w, http.StatusOK, update, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateStatus godoc
// @Summary Изменить статус матча
// @Tags fixtures
// @Accept json
// @Produce json
// @Param fixtureID path string true "Fixture ID"
// @Param input body statusRequest true "pending_date, upcoming или live"
// @Success 200 {object} services.FixtureUpdate
// @Security BearerAuth
// @Router /fixtures/{fixtureID}/status [put]
func (h *FixtureHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input statusRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	update, err := h.matchService.UpdateStatus(r.Context(), chi.URLParam(r, "fixtureID"), input.Status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err = writeJSON(w, http.StatusOK, update, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateBracket godoc
// @Summary Сгенерировать сетку плей-офф
// @Tags playoffs
// @Produce json
// @Success 201 {object} services.BracketResult
// @Failure 422 {object} map[string]string "Нет зон с четырьмя командами"
// @Security BearerAuth
// @Router /playoffs/generate [post]
func (h *FixtureHandler) GenerateBracket(w http.ResponseWriter, r *http.Request) {
	result, err := h.playoffService.GenerateBracket(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err = writeJSON(w, http.StatusCreated, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FixtureHandler) ListBracket(w http.ResponseWriter, r *http.Request) {
	fixtures, err := h.playoffService.ListBracket(r.Context(), zoneFilter(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err = writeJSON(w, http.StatusOK, jsonResponse{"fixtures": fixtures}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
