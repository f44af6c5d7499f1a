package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Sonic3k/sonic-task-manager/internal/models"
)

// PreferenceStore is the persistence collaborator for key/value settings.
type PreferenceStore interface {
	FindByKey(key string) (*models.Preference, error)
	FindAll() ([]models.Preference, error)
	Save(pref *models.Preference) error
	DeleteByKey(key string) (bool, error)
	DeleteAll() error
}

// GormPreferenceStore implements PreferenceStore on a GORM connection.
type GormPreferenceStore struct {
	db *gorm.DB
}

// NewPreferenceStore wraps a GORM connection in a PreferenceStore.
func NewPreferenceStore(db *gorm.DB) *GormPreferenceStore {
	return &GormPreferenceStore{db: db}
}

func (s *GormPreferenceStore) FindByKey(key string) (*models.Preference, error) {
	var pref models.Preference
	if err := s.db.Where("key = ?", key).First(&pref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pref, nil
}

func (s *GormPreferenceStore) FindAll() ([]models.Preference, error) {
	var prefs []models.Preference
	err := s.db.Find(&prefs).Error
	return prefs, err
}

func (s *GormPreferenceStore) Save(pref *models.Preference) error {
	return s.db.Save(pref).Error
}

// DeleteByKey removes a preference and reports whether it existed.
func (s *GormPreferenceStore) DeleteByKey(key string) (bool, error) {
	result := s.db.Where("key = ?", key).Delete(&models.Preference{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *GormPreferenceStore) DeleteAll() error {
	return s.db.Where("1 = 1").Delete(&models.Preference{}).Error
}

// Ensure GormPreferenceStore implements PreferenceStore at compile time.
var _ PreferenceStore = (*GormPreferenceStore)(nil)
