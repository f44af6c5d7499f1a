package focus

import (
	"testing"
	"time"

	"github.com/Sonic3k/sonic-task-manager/internal/models"
)

func TestCalculateDailyMood_Relaxed(t *testing.T) {
	if got := CalculateDailyMood(nil); got != MoodRelaxed {
		t.Fatalf("expected relaxed for no tasks, got %q", got)
	}

	// Only subtasks present: still relaxed.
	parentID := int64(1)
	subtasksOnly := []models.Task{
		{ID: 2, ParentID: &parentID, Status: models.StatusTodo},
	}
	if got := CalculateDailyMood(subtasksOnly); got != MoodRelaxed {
		t.Fatalf("expected relaxed for subtasks only, got %q", got)
	}
}

func TestCalculateDailyMood_Chill(t *testing.T) {
	// One plain task: stress = 0.5, normalized 0.5 -> chill.
	tasks := []models.Task{
		{ID: 1, Priority: models.PriorityLow, Complexity: models.ComplexityMedium, Status: models.StatusTodo},
	}
	if got := CalculateDailyMood(tasks); got != MoodChill {
		t.Fatalf("expected chill, got %q", got)
	}
}

func TestCalculateDailyMood_Intense(t *testing.T) {
	freezeNow(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local))

	// One overdue, urgent, high-priority, hard task:
	// 3 + 2 + 1.5 + 1 + 0.5 = 8 normalized by 1 -> intense.
	tasks := []models.Task{
		{
			ID:         1,
			Priority:   models.PriorityHigh,
			Complexity: models.ComplexityHard,
			Status:     models.StatusTodo,
			Deadline:   deadlineIn(-1),
		},
	}
	if got := CalculateDailyMood(tasks); got != MoodIntense {
		t.Fatalf("expected intense, got %q", got)
	}
}

func TestCalculateDailyMood_Steady(t *testing.T) {
	// Two tasks, one high priority: (1.5 + 2*0.5)/2 = 1.25 -> steady.
	tasks := []models.Task{
		{ID: 1, Priority: models.PriorityHigh, Complexity: models.ComplexityMedium, Status: models.StatusTodo},
		{ID: 2, Priority: models.PriorityLow, Complexity: models.ComplexityMedium, Status: models.StatusTodo},
	}
	if got := CalculateDailyMood(tasks); got != MoodSteady {
		t.Fatalf("expected steady, got %q", got)
	}
}

func TestMoodDescriptionAndEmoji(t *testing.T) {
	if got := MoodDescription(MoodBusy); got != "Busy day with important tasks" {
		t.Fatalf("unexpected description %q", got)
	}
	if got := MoodDescription(Mood("unknown")); got != "Ready for the day" {
		t.Fatalf("expected fallback description, got %q", got)
	}
	if got := MoodEmoji(MoodIntense); got != "🔥" {
		t.Fatalf("unexpected emoji %q", got)
	}
	if got := MoodEmoji(Mood("unknown")); got != "👍" {
		t.Fatalf("expected fallback emoji, got %q", got)
	}
}
