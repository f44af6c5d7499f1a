package focus

import (
	"github.com/Sonic3k/sonic-task-manager/internal/models"
)

// Mood is the daily workload mood label shown in the workspace header.
type Mood string

const (
	MoodRelaxed Mood = "relaxed"
	MoodChill   Mood = "chill"
	MoodSteady  Mood = "steady"
	MoodActive  Mood = "active"
	MoodBusy    Mood = "busy"
	MoodIntense Mood = "intense"
)

// CalculateDailyMood aggregates active-task pressure into a mood label.
// The stress score weighs overdue and urgent work heaviest, then priority
// and complexity, normalized by task count.
func CalculateDailyMood(activeTasks []models.Task) Mood {
	if len(activeTasks) == 0 {
		return MoodRelaxed
	}

	var main []*models.Task
	for i := range activeTasks {
		task := &activeTasks[i]
		if task.IsTopLevel() && !task.IsCompleted() {
			main = append(main, task)
		}
	}
	if len(main) == 0 {
		return MoodRelaxed
	}

	var overdue, urgent, highPriority, hard int
	for _, task := range main {
		if task.IsOverdue() {
			overdue++
		}
		if task.IsUrgent() {
			urgent++
		}
		if task.Priority == models.PriorityHigh {
			highPriority++
		}
		if task.Complexity == models.ComplexityHard {
			hard++
		}
	}

	stress := float64(overdue)*3 +
		float64(urgent)*2 +
		float64(highPriority)*1.5 +
		float64(hard)*1 +
		float64(len(main))*0.5

	normalized := stress / float64(len(main))

	switch {
	case normalized >= 4:
		return MoodIntense
	case normalized >= 3:
		return MoodBusy
	case normalized >= 2:
		return MoodActive
	case normalized >= 1:
		return MoodSteady
	default:
		return MoodChill
	}
}

// MoodDescription returns the display text for a mood.
func MoodDescription(mood Mood) string {
	switch mood {
	case MoodIntense:
		return "Intense day ahead - stay focused"
	case MoodBusy:
		return "Busy day with important tasks"
	case MoodActive:
		return "Active day with good momentum"
	case MoodSteady:
		return "Steady progress day"
	case MoodChill:
		return "Light day - good for deep work"
	case MoodRelaxed:
		return "Relaxed day - catch up or plan ahead"
	default:
		return "Ready for the day"
	}
}

// MoodEmoji returns the glyph for a mood.
func MoodEmoji(mood Mood) string {
	switch mood {
	case MoodIntense:
		return "🔥"
	case MoodBusy:
		return "⚡"
	case MoodActive:
		return "🎯"
	case MoodSteady:
		return "✊"
	case MoodChill:
		return "🌤️"
	case MoodRelaxed:
		return "😌"
	default:
		return "👍"
	}
}
