// Package focus holds the workspace scoring engine: the per-task focus
// score, the focus-task pick, urgency annotation, and the daily mood
// aggregate. Everything here is pure computation over task snapshots.
package focus

import (
	"strings"

	"github.com/Sonic3k/sonic-task-manager/internal/dateutil"
	"github.com/Sonic3k/sonic-task-manager/internal/models"
)

// Scoring weights. These are design constants, not runtime tunables.
const (
	priorityFactor   = 100
	urgencyFactor    = 80
	complexityFactor = 30
	doingBonus       = 50
	progressBonus    = 20
	snoozePenalty    = 100
)

// Score computes the focus score for a task. Higher means a better
// candidate to work on today.
func Score(task *models.Task) float64 {
	score := priorityWeight(task.Priority) * priorityFactor
	score += urgencyWeight(task) * urgencyFactor
	score += complexityWeight(task.Complexity) * complexityFactor

	if task.Status == models.StatusDoing {
		score += doingBonus
	}
	if task.ProgressCurrent > 0 {
		score += progressBonus
	}
	if task.SnoozedUntil != nil {
		score -= snoozePenalty
	}

	return score
}

func priorityWeight(priority models.TaskPriority) float64 {
	switch priority {
	case models.PriorityHigh:
		return 3
	case models.PriorityMedium:
		return 2
	case models.PriorityLow:
		return 1
	default:
		return 1
	}
}

func urgencyWeight(task *models.Task) float64 {
	if task.Deadline == nil {
		return 0
	}

	days := dateutil.DaysBetween(dateutil.Today(), *task.Deadline)
	switch {
	case days < 0:
		return 5 // overdue
	case days == 0:
		return 4 // due today
	case days <= 3:
		return 3
	case days <= 7:
		return 2
	case days <= 30:
		return 1
	default:
		return 0.5
	}
}

func complexityWeight(complexity models.TaskComplexity) float64 {
	switch complexity {
	case models.ComplexityEasy:
		return 2 // nudge easy tasks toward focus
	case models.ComplexityMedium:
		return 1.5
	case models.ComplexityHard:
		return 1
	default:
		return 1
	}
}

// PickFocusTask returns the best task to focus on today: the top-level,
// non-done task with the strictly highest score. Equal scores keep the
// first candidate seen, so the comparison must stay strict. Returns nil
// when no candidate exists.
func PickFocusTask(tasks []models.Task) *models.Task {
	var best *models.Task
	highest := -1.0

	for i := range tasks {
		task := &tasks[i]
		if !task.IsTopLevel() || task.IsCompleted() {
			continue
		}
		if score := Score(task); score > highest {
			highest = score
			best = task
		}
	}

	return best
}

// DaysUntilDeadline returns the day delta to the deadline, or nil when the
// task has none.
func DaysUntilDeadline(task *models.Task) *int {
	if task.Deadline == nil {
		return nil
	}
	days := dateutil.DaysBetween(dateutil.Today(), *task.Deadline)
	return &days
}

// UrgencyLevel classifies a task's deadline proximity for display.
func UrgencyLevel(task *models.Task) string {
	days := DaysUntilDeadline(task)
	if days == nil {
		return "none"
	}

	switch {
	case *days < 0:
		return "overdue"
	case *days == 0:
		return "today"
	case *days <= 1:
		return "urgent"
	case *days <= 3:
		return "soon"
	case *days <= 7:
		return "this_week"
	default:
		return "normal"
	}
}

// GenerateContext builds a focus-context message for a task that has none.
// An existing context is returned unchanged.
func GenerateContext(task *models.Task) string {
	if strings.TrimSpace(task.FocusContext) != "" {
		return task.FocusContext
	}

	var sb strings.Builder

	if task.IsOverdue() {
		sb.WriteString("This is overdue - let's get it done. ")
	} else if task.IsUrgent() {
		sb.WriteString("Due soon - good time to tackle this. ")
	}

	if task.Complexity == models.ComplexityEasy {
		sb.WriteString("Should be quick to finish. ")
	} else if task.Complexity == models.ComplexityHard {
		sb.WriteString("Take your time, just make progress. ")
	}

	if sb.Len() == 0 {
		sb.WriteString("Focus on this task today. ")
	}

	return strings.TrimSpace(sb.String())
}
