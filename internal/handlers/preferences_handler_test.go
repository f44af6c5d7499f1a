package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestGetPreference_DefaultFallback(t *testing.T) {
	setupTestDB(t)

	r := gin.New()
	r.GET("/api/preferences/:key", GetPreference)

	w := doJSON(t, r, http.MethodGet, "/api/preferences/daily_mood", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PreferenceValueResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "daily_mood", resp.Key)
	require.Equal(t, "chill", resp.Value)
}

func TestGetPreference_UnknownKey(t *testing.T) {
	setupTestDB(t)

	r := gin.New()
	r.GET("/api/preferences/:key", GetPreference)

	w := doJSON(t, r, http.MethodGet, "/api/preferences/nonexistent", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetAndDeletePreference_RoundTrip(t *testing.T) {
	setupTestDB(t)

	r := gin.New()
	r.GET("/api/preferences/:key", GetPreference)
	r.PUT("/api/preferences/:key", SetPreference)
	r.DELETE("/api/preferences/:key", DeletePreference)

	w := doJSON(t, r, http.MethodPut, "/api/preferences/workspace_theme",
		map[string]any{"value": "cool"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/preferences/workspace_theme", nil)
	var resp PreferenceValueResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "cool", resp.Value)

	w = doJSON(t, r, http.MethodDelete, "/api/preferences/workspace_theme", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Deleting again finds nothing stored.
	w = doJSON(t, r, http.MethodDelete, "/api/preferences/workspace_theme", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Reads fall back to the default.
	w = doJSON(t, r, http.MethodGet, "/api/preferences/workspace_theme", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "warm", resp.Value)
}

func TestSetPreference_MissingValue(t *testing.T) {
	setupTestDB(t)

	r := gin.New()
	r.PUT("/api/preferences/:key", SetPreference)

	w := doJSON(t, r, http.MethodPut, "/api/preferences/daily_mood", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetPreferences_BulkUpsert(t *testing.T) {
	setupTestDB(t)

	r := gin.New()
	r.PUT("/api/preferences", SetPreferences)
	r.GET("/api/preferences", GetAllPreferences)

	w := doJSON(t, r, http.MethodPut, "/api/preferences", map[string]string{
		"work_hours_start": "08:00",
		"custom_key":       "custom_value",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/preferences", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PreferencesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "08:00", resp.Preferences["work_hours_start"])
	require.Equal(t, "custom_value", resp.Preferences["custom_key"])
	// Untouched defaults still present in the merged view.
	require.Equal(t, "17:00", resp.Preferences["work_hours_end"])
}

func TestResetPreferences_DropsCustomKeys(t *testing.T) {
	setupTestDB(t)

	r := gin.New()
	r.PUT("/api/preferences", SetPreferences)
	r.POST("/api/preferences/reset", ResetPreferences)

	w := doJSON(t, r, http.MethodPut, "/api/preferences", map[string]string{
		"custom_key": "custom_value",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/preferences/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PreferencesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotContains(t, resp.Preferences, "custom_key")
	require.Equal(t, "chill", resp.Preferences["daily_mood"])
}
