package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carteira-app/carteira-backend/internal/repository"
	"github.com/carteira-app/carteira-backend/internal/testutil"
)

func TestSettingsHandler_Theme(t *testing.T) {
	setupHandler := func(t *testing.T) *SettingsHandler {
		t.Helper()
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewSettingsRepository(db, "")
		if err != nil {
			t.Fatalf("Failed to create settings repository: %v", err)
		}
		return NewSettingsHandler(repo)
	}

	t.Run("returns 404 when no theme is saved", func(t *testing.T) {
		handler := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/settings/theme", nil)
		w := httptest.NewRecorder()

		handler.GetTheme(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("stores and returns the theme", func(t *testing.T) {
		handler := setupHandler(t)

		theme := `{"mode":"dark","accent":"#4E79A7"}`
		putReq := testutil.NewRequestWithBody(http.MethodPut, "/api/settings/theme", theme)
		putW := httptest.NewRecorder()

		handler.SetTheme(putW, putReq)

		if putW.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", putW.Code, putW.Body.String())
		}

		getReq := httptest.NewRequest(http.MethodGet, "/api/settings/theme", nil)
		getW := httptest.NewRecorder()

		handler.GetTheme(getW, getReq)

		if getW.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", getW.Code, getW.Body.String())
		}

		var stored map[string]string
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(getW.Body).Decode(&stored)

		if stored["mode"] != "dark" || stored["accent"] != "#4E79A7" {
			t.Errorf("Expected stored theme returned, got %v", stored)
		}
	})

	t.Run("returns 400 when the payload is not a JSON object", func(t *testing.T) {
		handler := setupHandler(t)

		for _, payload := range []string{`"dark"`, `[1,2,3]`, `not json`} {
			req := testutil.NewRequestWithBody(http.MethodPut, "/api/settings/theme", payload)
			w := httptest.NewRecorder()

			handler.SetTheme(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400 for payload %s, got %d", payload, w.Code)
			}
		}
	})
}
