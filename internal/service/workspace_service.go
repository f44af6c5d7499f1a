package service

import (
	"math"
	"sort"

	"github.com/Sonic3k/sonic-task-manager/internal/dateutil"
	"github.com/Sonic3k/sonic-task-manager/internal/focus"
	"github.com/Sonic3k/sonic-task-manager/internal/models"
	"github.com/Sonic3k/sonic-task-manager/internal/store"
)

const (
	maxNextUpStack = 8
	maxQuickWins   = 4
)

// ShowSections tells the frontend which workspace panels have content.
type ShowSections struct {
	UrgentTasks bool `json:"urgentTasks"`
	QuickWins   bool `json:"quickWins"`
	Reminders   bool `json:"reminders"`
	Habits      bool `json:"habits"`
}

// WorkloadAssessment is a rough feel for how heavy the day looks.
type WorkloadAssessment struct {
	TotalTasks     int     `json:"totalTasks"`
	UrgentCount    int     `json:"urgentCount"`
	EstimatedHours float64 `json:"estimatedHours"`
	Recommendation string  `json:"recommendation"`
}

// Workspace is the fully derived view of "what should I look at today".
// It is recomputed from the task table on every request, never stored.
type Workspace struct {
	FocusTask          *models.Task       `json:"focusTask"`
	NextUpStack        []models.Task      `json:"nextUpStack"`
	QuickWins          []models.Task      `json:"quickWins"`
	ActiveReminders    []models.Task      `json:"activeReminders"`
	DailyMood          focus.Mood         `json:"dailyMood"`
	ShowSections       ShowSections       `json:"showSections"`
	WorkloadAssessment WorkloadAssessment `json:"workloadAssessment"`
}

// WorkspaceService composes the daily workspace from the active task set.
type WorkspaceService struct {
	tasks     store.TaskStore
	reminders *ReminderService
}

func NewWorkspaceService(tasks store.TaskStore, reminders *ReminderService) *WorkspaceService {
	return &WorkspaceService{tasks: tasks, reminders: reminders}
}

// CalculateTodaysWorkspace builds the complete workspace view.
// This is the main entry point the frontend polls.
func (s *WorkspaceService) CalculateTodaysWorkspace() (*Workspace, error) {
	now := dateutil.Now()

	active, err := s.tasks.FindActive(now)
	if err != nil {
		return nil, err
	}
	enrichTasks(active)

	focusTask, err := s.calculateFocusTask(active)
	if err != nil {
		return nil, err
	}
	nextUp := calculateNextUpStack(active, focusTask)
	quickWins := calculateQuickWins(active)

	activeReminders, err := s.reminders.GetActiveReminders()
	if err != nil {
		return nil, err
	}
	enrichTasks(activeReminders)

	workspace := &Workspace{
		FocusTask:          focusTask,
		NextUpStack:        nextUp,
		QuickWins:          quickWins,
		ActiveReminders:    activeReminders,
		DailyMood:          focus.CalculateDailyMood(active),
		ShowSections:       calculateShowSections(active, activeReminders, quickWins),
		WorkloadAssessment: calculateWorkloadAssessment(active),
	}
	return workspace, nil
}

// RefreshWorkspace recomputes the workspace. The calculation is pure, so
// this is just an alias callers reach for after mutating tasks.
func (s *WorkspaceService) RefreshWorkspace() (*Workspace, error) {
	return s.CalculateTodaysWorkspace()
}

// EmptyWorkspace is the graceful zero-state for a fresh or failed load.
func EmptyWorkspace() *Workspace {
	return &Workspace{
		NextUpStack:     []models.Task{},
		QuickWins:       []models.Task{},
		ActiveReminders: []models.Task{},
		DailyMood:       focus.MoodRelaxed,
		WorkloadAssessment: WorkloadAssessment{
			Recommendation: "No tasks found - time to add some goals!",
		},
	}
}

func (s *WorkspaceService) calculateFocusTask(active []models.Task) (*models.Task, error) {
	main := mainUnfinished(active)

	focusTask := focus.PickFocusTask(main)
	if focusTask == nil {
		return nil, nil
	}

	if focusTask.FocusContext == "" {
		focusTask.FocusContext = focus.GenerateContext(focusTask)
	}

	subtasks, err := s.tasks.FindByParentID(focusTask.ID)
	if err != nil {
		return nil, err
	}
	enrichTasks(subtasks)
	focusTask.Subtasks = subtasks

	return focusTask, nil
}

// calculateNextUpStack ranks the remaining main tasks by focus score.
// Reminders live in their own section, so they never enter the stack.
func calculateNextUpStack(active []models.Task, focusTask *models.Task) []models.Task {
	var focusID int64 = -1
	if focusTask != nil {
		focusID = focusTask.ID
	}

	stack := make([]models.Task, 0, maxNextUpStack)
	for _, task := range mainUnfinished(active) {
		if task.ID == focusID || task.Type == models.TypeReminder {
			continue
		}
		stack = append(stack, task)
	}

	sort.SliceStable(stack, func(i, j int) bool {
		return focus.Score(&stack[i]) > focus.Score(&stack[j])
	})

	if len(stack) > maxNextUpStack {
		stack = stack[:maxNextUpStack]
	}
	return stack
}

// calculateQuickWins picks up to four easy high-priority tasks still in todo.
func calculateQuickWins(active []models.Task) []models.Task {
	wins := make([]models.Task, 0, maxQuickWins)
	for _, task := range active {
		if !task.IsTopLevel() || task.Status != models.StatusTodo {
			continue
		}
		if task.Priority != models.PriorityHigh || task.Complexity != models.ComplexityEasy {
			continue
		}
		wins = append(wins, task)
		if len(wins) == maxQuickWins {
			break
		}
	}
	return wins
}

func calculateShowSections(active, reminders, quickWins []models.Task) ShowSections {
	sections := ShowSections{
		QuickWins: len(quickWins) > 0,
		Reminders: len(reminders) > 0,
	}
	for i := range active {
		if active[i].IsOverdue() || active[i].IsUrgent() {
			sections.UrgentTasks = true
		}
		if active[i].Type == models.TypeHabit {
			sections.Habits = true
		}
	}
	return sections
}

func calculateWorkloadAssessment(active []models.Task) WorkloadAssessment {
	main := mainUnfinished(active)

	assessment := WorkloadAssessment{TotalTasks: len(main)}

	var hours float64
	for i := range main {
		if main[i].IsOverdue() || main[i].IsUrgent() {
			assessment.UrgentCount++
		}
		hours += estimateTaskHours(&main[i])
	}
	assessment.EstimatedHours = math.Round(hours*10) / 10

	assessment.Recommendation = workloadRecommendation(assessment)
	return assessment
}

func estimateTaskHours(task *models.Task) float64 {
	switch task.Complexity {
	case models.ComplexityEasy:
		return 0.5
	case models.ComplexityMedium:
		return 2.0
	case models.ComplexityHard:
		return 4.0
	default:
		return 1.0
	}
}

func workloadRecommendation(a WorkloadAssessment) string {
	switch {
	case a.UrgentCount > 3:
		return "Heavy day with urgent tasks - focus on priorities"
	case a.UrgentCount > 0:
		return "Some urgent items to handle today"
	case a.TotalTasks <= 3:
		return "Light day, good for deep work or catching up"
	case a.TotalTasks <= 6:
		return "Moderate workload, balance focus and quick tasks"
	default:
		return "Busy day ahead - consider prioritizing"
	}
}

// mainUnfinished filters to top-level tasks that are not done.
func mainUnfinished(tasks []models.Task) []models.Task {
	main := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.IsTopLevel() && task.Status != models.StatusDone {
			main = append(main, task)
		}
	}
	return main
}
