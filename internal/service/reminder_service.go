package service

import (
	"errors"
	"time"

	"github.com/Sonic3k/sonic-task-manager/internal/dateutil"
	"github.com/Sonic3k/sonic-task-manager/internal/models"
	"github.com/Sonic3k/sonic-task-manager/internal/store"
)

const maxRemindersShown = 3

// ReminderService surfaces gentle reminders without nagging: each
// candidate is throttled by a deterministic per-task probability that
// grows with how long the reminder has been untouched.
type ReminderService struct {
	tasks store.TaskStore
	prefs *PreferencesService
}

func NewReminderService(tasks store.TaskStore, prefs *PreferencesService) *ReminderService {
	return &ReminderService{tasks: tasks, prefs: prefs}
}

// GetActiveReminders returns at most three reminders that deserve
// attention right now, most recently touched first.
func (s *ReminderService) GetActiveReminders() ([]models.Task, error) {
	now := dateutil.Now()
	frequency := s.prefs.GentleReminderFrequency()
	threshold := now.AddDate(0, 0, -frequency)

	reminders, err := s.tasks.FindActiveReminders(now, threshold)
	if err != nil {
		return nil, err
	}

	shown := make([]models.Task, 0, maxRemindersShown)
	for _, reminder := range reminders {
		if !shouldShowReminderToday(&reminder, now) {
			continue
		}
		shown = append(shown, reminder)
		if len(shown) == maxRemindersShown {
			break
		}
	}
	return shown, nil
}

// shouldShowReminderToday gates a reminder behind a probability that
// rises 15% per untouched day, capped at 70%. The task id seeds the
// "random" draw so the same reminder gets the same answer all day.
// Anything untouched for over a week always shows.
func shouldShowReminderToday(reminder *models.Task, now time.Time) bool {
	if reminder.UpdatedAt.Before(now.AddDate(0, 0, -7)) {
		return true
	}

	daysSinceUpdate := dateutil.DaysBetween(
		dateutil.StartOfDay(reminder.UpdatedAt),
		dateutil.StartOfDay(now),
	)

	probability := float64(daysSinceUpdate) * 0.15
	if probability > 0.7 {
		probability = 0.7
	}

	seed := reminder.ID % 100
	return float64(seed)/100.0 < probability
}

// SnoozeReminder hides a reminder for the given number of days.
// Missing ids and non-reminder tasks are silently ignored.
func (s *ReminderService) SnoozeReminder(taskID int64, days int) error {
	task, err := s.tasks.FindByID(taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	if task.Type != models.TypeReminder {
		return nil
	}
	until := dateutil.Now().AddDate(0, 0, days)
	task.SnoozedUntil = &until
	return s.tasks.Save(task)
}

// AcknowledgeReminder bumps a reminder's updated_at so the throttle
// starts over. Missing ids and non-reminder tasks are silently ignored.
func (s *ReminderService) AcknowledgeReminder(taskID int64) error {
	task, err := s.tasks.FindByID(taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	if task.Type != models.TypeReminder {
		return nil
	}
	task.UpdatedAt = dateutil.Now()
	return s.tasks.Save(task)
}
