package models

import (
	"time"
)

// HabitSession is one logged practice session for a habit-type task.
// Sessions are append-only; there is no uniqueness constraint per day.
type HabitSession struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TaskID          int64     `json:"taskId" gorm:"column:task_id;not null;index"`
	SessionDate     time.Time `json:"sessionDate" gorm:"column:session_date;not null"`
	DurationMinutes int       `json:"durationMinutes" gorm:"column:duration_minutes"`
	ProgressNote    string    `json:"progressNote" gorm:"column:progress_note"`
	CreatedAt       time.Time `json:"createdAt" gorm:"column:created_at"`
}

// TableName specifies the table name for HabitSession Model
func (HabitSession) TableName() string {
	return "habit_sessions"
}
