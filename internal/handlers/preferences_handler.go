package handlers

import (
	"errors"
	"net/http"

	"github.com/Sonic3k/sonic-task-manager/internal/database"
	"github.com/Sonic3k/sonic-task-manager/internal/service"
	"github.com/Sonic3k/sonic-task-manager/internal/store"

	"github.com/gin-gonic/gin"
)

// SetPreferenceRequest represents the request payload for setting one preference
type SetPreferenceRequest struct {
	Value string `json:"value" binding:"required"`
}

func newPreferencesService() *service.PreferencesService {
	return service.NewPreferencesService(store.NewPreferenceStore(database.GetDB()))
}

// GetAllPreferences handles GET /api/preferences
// Stored values are merged over the system defaults.
func GetAllPreferences(c *gin.Context) {
	prefs, err := newPreferencesService().GetAllPreferences()
	if err != nil {
		c.JSON(http.StatusInternalServerError, PreferencesResponse{
			BaseResponse: errorResponse("Failed to fetch preferences", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, PreferencesResponse{
		BaseResponse: BaseResponse{Success: true},
		Preferences:  prefs,
	})
}

// GetPreference handles GET /api/preferences/:key
func GetPreference(c *gin.Context) {
	key := c.Param("key")

	value, err := newPreferencesService().GetPreference(key)
	if err != nil {
		if errors.Is(err, service.ErrPreferenceNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Preference not found", ""))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to fetch preference", err.Error()))
		return
	}

	c.JSON(http.StatusOK, PreferenceValueResponse{
		BaseResponse: BaseResponse{Success: true},
		Key:          key,
		Value:        value,
	})
}

// SetPreference handles PUT /api/preferences/:key
func SetPreference(c *gin.Context) {
	key := c.Param("key")

	var req SetPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request payload", err.Error()))
		return
	}

	if err := newPreferencesService().SetPreference(key, req.Value); err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, errorResponse("Failed to update preference", "preference key cannot be empty"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to update preference", err.Error()))
		return
	}

	c.JSON(http.StatusOK, okResponse("Preference updated successfully"))
}

// SetPreferences handles PUT /api/preferences
// Body is a flat string map; every entry is upserted.
func SetPreferences(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request payload", err.Error()))
		return
	}

	if err := newPreferencesService().SetPreferences(values); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to update preferences", err.Error()))
		return
	}

	c.JSON(http.StatusOK, okResponse("Preferences updated successfully"))
}

// DeletePreference handles DELETE /api/preferences/:key
// Later reads fall back to the system default for known keys.
func DeletePreference(c *gin.Context) {
	deleted, err := newPreferencesService().DeletePreference(c.Param("key"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to delete preference", err.Error()))
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, errorResponse("Preference not found", ""))
		return
	}

	c.JSON(http.StatusOK, okResponse("Preference deleted successfully"))
}

// ResetPreferences handles POST /api/preferences/reset
func ResetPreferences(c *gin.Context) {
	svc := newPreferencesService()
	if err := svc.ResetToDefaults(); err != nil {
		c.JSON(http.StatusInternalServerError, PreferencesResponse{
			BaseResponse: errorResponse("Failed to reset preferences", err.Error()),
		})
		return
	}

	prefs, err := svc.GetAllPreferences()
	if err != nil {
		c.JSON(http.StatusInternalServerError, PreferencesResponse{
			BaseResponse: errorResponse("Failed to reset preferences", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, PreferencesResponse{
		BaseResponse: okResponse("Preferences reset to defaults"),
		Preferences:  prefs,
	})
}

// InitializePreferences handles POST /api/preferences/initialize
// Useful on first run; existing values are left untouched.
func InitializePreferences(c *gin.Context) {
	svc := newPreferencesService()
	if err := svc.InitializeDefaults(); err != nil {
		c.JSON(http.StatusInternalServerError, PreferencesResponse{
			BaseResponse: errorResponse("Failed to initialize preferences", err.Error()),
		})
		return
	}

	prefs, err := svc.GetAllPreferences()
	if err != nil {
		c.JSON(http.StatusInternalServerError, PreferencesResponse{
			BaseResponse: errorResponse("Failed to initialize preferences", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, PreferencesResponse{
		BaseResponse: okResponse("Preferences initialized successfully"),
		Preferences:  prefs,
	})
}
