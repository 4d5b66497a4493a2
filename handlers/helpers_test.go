package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/zone-cup/models"
	"github.com/Dosada05/zone-cup/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("lookup: %w", services.ErrTeamNotFound), http.StatusNotFound},
		{services.ErrZoneNotFound, http.StatusNotFound},
		{services.ErrFixtureNotFound, http.StatusNotFound},
		{services.ErrGroupsLocked, http.StatusConflict},
		{services.ErrRulesFrozen, http.StatusConflict},
		{services.ErrFixtureTeamsPending, http.StatusConflict},
		{services.ErrTeamNameConflict, http.StatusConflict},
		{services.ErrNotEnoughZones, http.StatusUnprocessableEntity},
		{services.ErrNoPlayoffZones, http.StatusUnprocessableEntity},
		{&models.ValidationError{Fields: map[string]string{"pointsForWin": "must not be negative"}}, http.StatusUnprocessableEntity},
		{services.ErrInvalidScore, http.StatusBadRequest},
		{services.ErrSameZone, http.StatusBadRequest},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrLogoStorageDisabled, http.StatusServiceUnavailable},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			assert.Equal(t, tt.want, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body, "error")
		})
	}
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	rec := httptest.NewRecorder()
	mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password authentication failed"))
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestReadJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"name": "Tigres"}`, ""},
		{"empty", ``, "must not be empty"},
		{"malformed", `{"name": `, "badly-formed"},
		{"wrong type", `{"name": 5}`, `field "name"`},
		{"unknown field", `{"name": "a", "color": "red"}`, "unknown key"},
		{"two values", `{"name": "a"} {"name": "b"}`, "single JSON value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst payload
			err := readJSON(httptest.NewRecorder(), req, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Tigres", dst.Name)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://cup.example"})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, check(req), "requests without Origin are allowed")

	req.Header.Set("Origin", "https://cup.example")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, check(req))

	assert.True(t, originChecker(nil)(req))
	assert.True(t, originChecker([]string{"*"})(req))
}
