package service

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Sonic3k/sonic-task-manager/internal/models"
	"github.com/Sonic3k/sonic-task-manager/internal/store"
)

// defaultPreferences backs every key the app relies on. Lookups fall
// through to this map, so a fresh database behaves as if fully configured.
var defaultPreferences = map[string]string{
	"daily_mood":                "chill",
	"work_hours_start":          "09:00",
	"work_hours_end":            "17:00",
	"focus_session_duration":    "90",
	"gentle_reminder_frequency": "3",
	"show_completed_tasks":      "true",
	"workspace_theme":           "warm",
}

// PreferencesService manages the key-value preference store with
// built-in defaults.
type PreferencesService struct {
	prefs store.PreferenceStore
}

func NewPreferencesService(prefs store.PreferenceStore) *PreferencesService {
	return &PreferencesService{prefs: prefs}
}

// GetPreference returns the stored value for key.
// Returns ErrPreferenceNotFound when the key has never been set and has
// no system default either.
func (s *PreferencesService) GetPreference(key string) (string, error) {
	pref, err := s.prefs.FindByKey(key)
	if err == nil {
		return pref.Value, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}
	if def, ok := defaultPreferences[key]; ok {
		return def, nil
	}
	return "", ErrPreferenceNotFound
}

// GetPreferenceOrDefault returns the stored value or the caller's fallback.
func (s *PreferencesService) GetPreferenceOrDefault(key, fallback string) (string, error) {
	pref, err := s.prefs.FindByKey(key)
	if err == nil {
		return pref.Value, nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return fallback, nil
	}
	return "", err
}

// SetPreference upserts one key.
func (s *PreferencesService) SetPreference(key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidArgument
	}
	return s.prefs.Save(&models.Preference{Key: key, Value: value})
}

// SetPreferences upserts several keys at once.
func (s *PreferencesService) SetPreferences(values map[string]string) error {
	for key, value := range values {
		if err := s.SetPreference(key, value); err != nil {
			return err
		}
	}
	return nil
}

// GetAllPreferences merges stored values over the defaults, so the result
// always contains every known key.
func (s *PreferencesService) GetAllPreferences() (map[string]string, error) {
	stored, err := s.prefs.FindAll()
	if err != nil {
		return nil, err
	}

	merged := make(map[string]string, len(defaultPreferences)+len(stored))
	for key, value := range defaultPreferences {
		merged[key] = value
	}
	for _, pref := range stored {
		merged[pref.Key] = pref.Value
	}
	return merged, nil
}

// DeletePreference removes a stored key. Reads fall back to the system
// default afterwards. Returns false when the key was not stored.
func (s *PreferencesService) DeletePreference(key string) (bool, error) {
	return s.prefs.DeleteByKey(key)
}

// InitializeDefaults persists any default key that is not yet stored.
func (s *PreferencesService) InitializeDefaults() error {
	for key, value := range defaultPreferences {
		_, err := s.prefs.FindByKey(key)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if err := s.SetPreference(key, value); err != nil {
			return err
		}
	}
	return nil
}

// ResetToDefaults wipes all stored preferences and re-seeds the defaults.
func (s *PreferencesService) ResetToDefaults() error {
	if err := s.prefs.DeleteAll(); err != nil {
		return err
	}
	return s.InitializeDefaults()
}

// WorkHoursStart returns the configured start hour of the work day.
func (s *PreferencesService) WorkHoursStart() int {
	return s.hourPreference("work_hours_start", 9)
}

// WorkHoursEnd returns the configured end hour of the work day.
func (s *PreferencesService) WorkHoursEnd() int {
	return s.hourPreference("work_hours_end", 17)
}

func (s *PreferencesService) hourPreference(key string, fallback int) int {
	value, err := s.GetPreference(key)
	if err != nil {
		return fallback
	}
	hour, err := strconv.Atoi(strings.SplitN(value, ":", 2)[0])
	if err != nil {
		return fallback
	}
	return hour
}

// FocusSessionDuration returns the focus session length in minutes.
func (s *PreferencesService) FocusSessionDuration() int {
	return s.intPreference("focus_session_duration", 90)
}

// GentleReminderFrequency returns how many untouched days a reminder
// waits before it starts surfacing.
func (s *PreferencesService) GentleReminderFrequency() int {
	return s.intPreference("gentle_reminder_frequency", 3)
}

func (s *PreferencesService) intPreference(key string, fallback int) int {
	value, err := s.GetPreference(key)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// ShouldShowCompletedTasks reports the show_completed_tasks toggle.
func (s *PreferencesService) ShouldShowCompletedTasks() bool {
	value, err := s.GetPreference("show_completed_tasks")
	if err != nil {
		return true
	}
	return strings.EqualFold(value, "true")
}
