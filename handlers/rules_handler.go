package handlers

import (
	"net/http"

	"github.com/Dosada05/zone-cup/models"
	"github.com/Dosada05/zone-cup/services"
)

type RulesHandler struct {
	rulesService services.RulesService
}

func NewRulesHandler(rulesService services.RulesService) *RulesHandler {
	return &RulesHandler{rulesService: rulesService}
}

// GetRules godoc
// @Summary Правила турнира
// @Tags rules
// @Produce json
// @Success 200 {object} map[string]interface{} "rules"
// @Router /rules [get]
func (h *RulesHandler) GetRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.rulesService.GetRules(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err = writeJSON(w, http.StatusOK, jsonResponse{"rules": rules}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateRules godoc
// @Summary Изменить правила турнира
// @Tags rules
// @Description Правила заменяются целиком. После жеребьевки групп изменение запрещено.
// @Accept json
// @Produce json
// @Param input body models.RulesConfig true "Новые правила"
// @Success 200 {object} map[string]interface{} "rules"
// @Failure 409 {object} map[string]string "Группы уже разыграны"
// @Failure 422 {object} map[string]interface{} "Ошибки валидации по полям"
// @Security BearerAuth
// @Router /rules [put]
func (h *RulesHandler) UpdateRules(w http.ResponseWriter, r *http.Request) {
	var input models.RulesConfig
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rules, err := h.rulesService.UpdateRules(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err = writeJSON(w, http.StatusOK, jsonResponse{"rules": rules}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
