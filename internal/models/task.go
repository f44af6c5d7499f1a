package models

import (
	"time"

	"github.com/Sonic3k/sonic-task-manager/internal/dateutil"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	StatusTodo    TaskStatus = "todo"
	StatusDoing   TaskStatus = "doing"
	StatusDone    TaskStatus = "done"
	StatusSnoozed TaskStatus = "snoozed"
)

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// TaskComplexity represents how much effort a task needs
type TaskComplexity string

const (
	ComplexityEasy   TaskComplexity = "easy"
	ComplexityMedium TaskComplexity = "medium"
	ComplexityHard   TaskComplexity = "hard"
)

// TaskType represents the type of a task (deadline, habit, reminder, event)
type TaskType string

const (
	TypeDeadline TaskType = "deadline"
	TypeHabit    TaskType = "habit"
	TypeReminder TaskType = "reminder"
	TypeEvent    TaskType = "event"
)

// Task represents a task in the system. A task with a ParentID is a subtask
// of a top-level task; nesting deeper than one level is not supported.
type Task struct {
	ID              int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Title           string         `json:"title" gorm:"not null"`
	Description     string         `json:"description"`
	Type            TaskType       `json:"type" gorm:"default:'deadline'"`
	Priority        TaskPriority   `json:"priority" gorm:"default:'medium'"`
	Complexity      TaskComplexity `json:"complexity" gorm:"default:'medium'"`
	Status          TaskStatus     `json:"status" gorm:"not null;default:'todo'"`
	ProgressCurrent int            `json:"progressCurrent" gorm:"column:progress_current;default:0"`
	ProgressTotal   int            `json:"progressTotal" gorm:"column:progress_total;default:1"`
	ParentID        *int64         `json:"parentId" gorm:"column:parent_id;index"`
	Deadline        *time.Time     `json:"deadline"`
	ScheduledDate   *time.Time     `json:"scheduledDate" gorm:"column:scheduled_date"`
	CompletedAt     *time.Time     `json:"completedAt" gorm:"column:completed_at"`
	SnoozedUntil    *time.Time     `json:"snoozedUntil" gorm:"column:snoozed_until"`
	FocusContext    string         `json:"focusContext" gorm:"column:focus_context"`
	Tags            string         `json:"tags"`
	Context         string         `json:"context"`
	CreatedAt       time.Time      `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" gorm:"column:updated_at"`

	// Derived fields, computed per request and never persisted
	Subtasks          []Task `json:"subtasks,omitempty" gorm:"-"`
	DaysUntilDeadline *int   `json:"daysUntilDeadline,omitempty" gorm:"-"`
	UrgencyLevel      string `json:"urgencyLevel,omitempty" gorm:"-"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// IsOverdue reports whether the task's deadline has passed.
func (t *Task) IsOverdue() bool {
	return t.Deadline != nil && dateutil.IsOverdueDeadline(*t.Deadline)
}

// IsUrgent reports whether the deadline is at most one day away. This is the
// strict urgency predicate; the wider 3-day window used for ordering and
// stats lives in dateutil.IsUrgentDeadline.
func (t *Task) IsUrgent() bool {
	if t.Deadline == nil {
		return false
	}
	return dateutil.DaysBetween(dateutil.Today(), *t.Deadline) <= 1
}

// IsCompleted reports whether the task is done.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusDone
}

// IsTopLevel reports whether the task has no parent.
func (t *Task) IsTopLevel() bool {
	return t.ParentID == nil
}

// ProgressPercentage returns completion progress as a 0-100 integer.
func (t *Task) ProgressPercentage() int {
	if t.ProgressTotal <= 0 || t.ProgressCurrent <= 0 {
		return 0
	}
	pct := float64(t.ProgressCurrent) / float64(t.ProgressTotal) * 100
	return int(pct + 0.5)
}

// ComplexityLabel returns a friendly label for the task's complexity.
func (t *Task) ComplexityLabel() string {
	switch t.Complexity {
	case ComplexityEasy:
		return "Quick task"
	case ComplexityMedium:
		return "Work gradually"
	case ComplexityHard:
		return "Needs focus"
	case "":
		return "Unknown"
	default:
		return string(t.Complexity)
	}
}
