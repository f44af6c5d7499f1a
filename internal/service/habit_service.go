package service

import (
	"errors"
	"strings"
	"time"

	"github.com/Sonic3k/sonic-task-manager/internal/dateutil"
	"github.com/Sonic3k/sonic-task-manager/internal/models"
	"github.com/Sonic3k/sonic-task-manager/internal/store"
)

// LogSessionInput records one practice session against a habit task.
type LogSessionInput struct {
	TaskID          int64
	SessionDate     *time.Time
	DurationMinutes int
	ProgressNote    string
}

// HabitService tracks practice sessions for habit-type tasks.
type HabitService struct {
	tasks    store.TaskStore
	sessions store.HabitSessionStore
}

func NewHabitService(tasks store.TaskStore, sessions store.HabitSessionStore) *HabitService {
	return &HabitService{tasks: tasks, sessions: sessions}
}

// LogSession appends a session for a habit task. The session date defaults
// to today. Logging also bumps the task's updated_at through Save, which
// keeps habits out of the stale-reminder pool.
func (s *HabitService) LogSession(input LogSessionInput) (*models.HabitSession, error) {
	task, err := s.tasks.FindByID(input.TaskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if task.Type != models.TypeHabit {
		return nil, ErrNotHabitTask
	}
	if input.DurationMinutes < 0 {
		return nil, ErrInvalidArgument
	}

	sessionDate := dateutil.Today()
	if input.SessionDate != nil {
		sessionDate = dateutil.StartOfDay(*input.SessionDate)
	}

	session := &models.HabitSession{
		TaskID:          task.ID,
		SessionDate:     sessionDate,
		DurationMinutes: input.DurationMinutes,
		ProgressNote:    strings.TrimSpace(input.ProgressNote),
	}
	if err := s.sessions.Save(session); err != nil {
		return nil, err
	}

	// A logged session counts as touching the habit.
	if task.Status == models.StatusTodo {
		task.Status = models.StatusDoing
	}
	if err := s.tasks.Save(task); err != nil {
		return nil, err
	}

	return session, nil
}

// GetSessions returns all sessions for a habit, newest first.
func (s *HabitService) GetSessions(taskID int64) ([]models.HabitSession, error) {
	if _, err := s.requireHabit(taskID); err != nil {
		return nil, err
	}
	return s.sessions.FindByTaskID(taskID)
}

// GetSessionsInRange returns sessions for a habit between two dates inclusive.
func (s *HabitService) GetSessionsInRange(taskID int64, from, to time.Time) ([]models.HabitSession, error) {
	if _, err := s.requireHabit(taskID); err != nil {
		return nil, err
	}
	return s.sessions.FindByTaskIDInRange(taskID, dateutil.StartOfDay(from), dateutil.EndOfDay(to))
}

// GetLatestSession returns the most recent session, or nil when none exist.
func (s *HabitService) GetLatestSession(taskID int64) (*models.HabitSession, error) {
	if _, err := s.requireHabit(taskID); err != nil {
		return nil, err
	}
	session, err := s.sessions.FindLatestByTaskID(taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}

// CountSessions returns how many sessions a habit has accumulated.
func (s *HabitService) CountSessions(taskID int64) (int64, error) {
	if _, err := s.requireHabit(taskID); err != nil {
		return 0, err
	}
	return s.sessions.CountByTaskID(taskID)
}

// GetRecentSessions returns all sessions across habits from the last N days.
func (s *HabitService) GetRecentSessions(days int) ([]models.HabitSession, error) {
	if days < 1 {
		days = 7
	}
	since := dateutil.AddDays(dateutil.Today(), -days)
	return s.sessions.FindRecent(since)
}

// ListHabitTasks returns the active habit-type tasks.
func (s *HabitService) ListHabitTasks() ([]models.Task, error) {
	active, err := s.tasks.FindActive(dateutil.Now())
	if err != nil {
		return nil, err
	}
	habits := make([]models.Task, 0, len(active))
	for _, task := range active {
		if task.Type == models.TypeHabit && task.IsTopLevel() {
			habits = append(habits, task)
		}
	}
	enrichTasks(habits)
	return habits, nil
}

func (s *HabitService) requireHabit(taskID int64) (*models.Task, error) {
	task, err := s.tasks.FindByID(taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if task.Type != models.TypeHabit {
		return nil, ErrNotHabitTask
	}
	return task, nil
}
