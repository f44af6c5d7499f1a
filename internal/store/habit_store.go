package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Sonic3k/sonic-task-manager/internal/models"
)

// HabitSessionStore is the persistence collaborator for the append-only
// habit session log.
type HabitSessionStore interface {
	Save(session *models.HabitSession) error
	FindByTaskID(taskID int64) ([]models.HabitSession, error)
	FindByTaskIDInRange(taskID int64, from, to time.Time) ([]models.HabitSession, error)
	FindLatestByTaskID(taskID int64) (*models.HabitSession, error)
	FindRecent(since time.Time) ([]models.HabitSession, error)
	CountByTaskID(taskID int64) (int64, error)
}

// GormHabitSessionStore implements HabitSessionStore on a GORM connection.
type GormHabitSessionStore struct {
	db *gorm.DB
}

// NewHabitSessionStore wraps a GORM connection in a HabitSessionStore.
func NewHabitSessionStore(db *gorm.DB) *GormHabitSessionStore {
	return &GormHabitSessionStore{db: db}
}

func (s *GormHabitSessionStore) Save(session *models.HabitSession) error {
	return s.db.Save(session).Error
}

func (s *GormHabitSessionStore) FindByTaskID(taskID int64) ([]models.HabitSession, error) {
	var sessions []models.HabitSession
	err := s.db.Where("task_id = ?", taskID).Order("session_date desc").Find(&sessions).Error
	return sessions, err
}

func (s *GormHabitSessionStore) FindByTaskIDInRange(taskID int64, from, to time.Time) ([]models.HabitSession, error) {
	var sessions []models.HabitSession
	err := s.db.
		Where("task_id = ?", taskID).
		Where("session_date BETWEEN ? AND ?", from, to).
		Order("session_date desc").
		Find(&sessions).Error
	return sessions, err
}

func (s *GormHabitSessionStore) FindLatestByTaskID(taskID int64) (*models.HabitSession, error) {
	var session models.HabitSession
	err := s.db.Where("task_id = ?", taskID).Order("session_date desc").First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (s *GormHabitSessionStore) FindRecent(since time.Time) ([]models.HabitSession, error) {
	var sessions []models.HabitSession
	err := s.db.Where("session_date >= ?", since).Order("session_date desc").Find(&sessions).Error
	return sessions, err
}

func (s *GormHabitSessionStore) CountByTaskID(taskID int64) (int64, error) {
	var count int64
	err := s.db.Model(&models.HabitSession{}).Where("task_id = ?", taskID).Count(&count).Error
	return count, err
}

// Ensure GormHabitSessionStore implements HabitSessionStore at compile time.
var _ HabitSessionStore = (*GormHabitSessionStore)(nil)
