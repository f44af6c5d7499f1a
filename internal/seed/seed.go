// Package seed fills an empty database with a realistic starting set of
// tasks, habit sessions, and preferences so the workspace has something
// to show on first run.
package seed

import (
	"fmt"
	"log"
	"time"

	"github.com/Sonic3k/sonic-task-manager/internal/dateutil"
	"github.com/Sonic3k/sonic-task-manager/internal/models"
	"github.com/Sonic3k/sonic-task-manager/internal/service"
	"github.com/Sonic3k/sonic-task-manager/internal/store"

	"gorm.io/gorm"
)

// SeedIfEmpty populates sample data when the task table is empty.
func SeedIfEmpty(db *gorm.DB) error {
	tasks := store.NewTaskStore(db)

	count, err := tasks.CountAll()
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Database already contains data. Skipping initialization.")
		return nil
	}

	log.Println("Initializing sample data...")

	seeder := &seeder{
		tasks:    tasks,
		sessions: store.NewHabitSessionStore(db),
		prefs:    service.NewPreferencesService(store.NewPreferenceStore(db)),
	}
	if err := seeder.createSampleTasks(); err != nil {
		return err
	}
	if err := seeder.createSampleHabitSessions(); err != nil {
		return err
	}
	if err := seeder.prefs.InitializeDefaults(); err != nil {
		return err
	}

	log.Println("Sample data created successfully!")
	return nil
}

type seeder struct {
	tasks    store.TaskStore
	sessions store.HabitSessionStore
	prefs    *service.PreferencesService

	pianoID   int64
	englishID int64
}

func (s *seeder) createSampleTasks() error {
	// Urgent deadline task with a partially done subtask list. Should be
	// a strong focus candidate.
	photovista, err := s.createTask(taskSpec{
		title:        "Complete Photovista wireframes",
		description:  "Design the main user interface wireframes for the photo sharing app",
		taskType:     models.TypeDeadline,
		priority:     models.PriorityHigh,
		complexity:   models.ComplexityHard,
		deadline:     daysFromNow(3),
		focusContext: "Take your time with the design, just get the main flow sketched out",
	})
	if err != nil {
		return err
	}
	photovistaSubtasks := []struct {
		title string
		done  bool
	}{
		{"Research competitor apps", true},
		{"Sketch main screens", false},
		{"Create user flow", false},
		{"Review with team", false},
	}
	for _, sub := range photovistaSubtasks {
		if err := s.createSubtask(photovista.ID, sub.title, sub.done); err != nil {
			return err
		}
	}
	if err := s.syncParentProgress(photovista); err != nil {
		return err
	}

	// Overdue task, ranks above everything in focus scoring.
	reactNative, err := s.createTask(taskSpec{
		title:        "Setup React Native development environment",
		description:  "Install and configure React Native for mobile development",
		taskType:     models.TypeDeadline,
		priority:     models.PriorityHigh,
		complexity:   models.ComplexityHard,
		deadline:     daysFromNow(-2),
		focusContext: "This is overdue - let's get it done step by step",
	})
	if err != nil {
		return err
	}
	for _, title := range []string{
		"Install Node.js and npm",
		"Install React Native CLI",
		"Setup Android Studio",
	} {
		if err := s.createSubtask(reactNative.ID, title, false); err != nil {
			return err
		}
	}
	if err := s.syncParentProgress(reactNative); err != nil {
		return err
	}

	// Next-up stack material, mixed priorities.
	nextUp := []taskSpec{
		{title: "Reply to client emails", description: "Respond to 3 pending client emails from this week",
			taskType: models.TypeDeadline, priority: models.PriorityHigh, complexity: models.ComplexityEasy, deadline: daysFromNow(1)},
		{title: "Update portfolio website", description: "Add recent projects and update contact information",
			taskType: models.TypeDeadline, priority: models.PriorityMedium, complexity: models.ComplexityMedium, deadline: daysFromNow(7)},
		{title: "Research laptop options", description: "Compare different laptop models for development work",
			taskType: models.TypeDeadline, priority: models.PriorityMedium, complexity: models.ComplexityEasy, deadline: daysFromNow(14)},
		{title: "Plan weekend trip to Da Lat", description: "Book hotel and plan itinerary for weekend getaway",
			taskType: models.TypeDeadline, priority: models.PriorityLow, complexity: models.ComplexityMedium, deadline: daysFromNow(10)},
	}

	// Quick wins: high priority + easy.
	quickWins := []taskSpec{
		{title: "Backup project files to cloud", description: "Upload important project files to Google Drive",
			taskType: models.TypeDeadline, priority: models.PriorityHigh, complexity: models.ComplexityEasy, deadline: daysFromNow(5)},
		{title: "Call dentist for appointment", description: "Schedule dental checkup for next month",
			taskType: models.TypeDeadline, priority: models.PriorityHigh, complexity: models.ComplexityEasy, deadline: daysFromNow(2)},
		{title: "Order new keyboard", description: "Replace broken mechanical keyboard for better typing",
			taskType: models.TypeDeadline, priority: models.PriorityHigh, complexity: models.ComplexityEasy, deadline: daysFromNow(7)},
	}

	// Gentle reminders that surface occasionally.
	reminders := []taskSpec{
		{title: "Think about buying a car", description: "Consider whether it's time to purchase a vehicle",
			taskType: models.TypeReminder, priority: models.PriorityLow, complexity: models.ComplexityHard},
		{title: "Plan mother's birthday party", description: "Start thinking about celebration ideas for next month",
			taskType: models.TypeReminder, priority: models.PriorityMedium, complexity: models.ComplexityMedium, deadline: daysFromNow(45)},
		{title: "Research investment options", description: "Look into different ways to invest savings",
			taskType: models.TypeReminder, priority: models.PriorityLow, complexity: models.ComplexityHard},
	}

	// Time-sensitive events.
	events := []taskSpec{
		{title: "Team standup meeting", description: "Weekly team sync and progress updates",
			taskType: models.TypeEvent, priority: models.PriorityMedium, complexity: models.ComplexityEasy, deadline: daysFromNow(0)},
		{title: "Visit grandmother for weekend", description: "Family visit planned for this weekend",
			taskType: models.TypeEvent, priority: models.PriorityHigh, complexity: models.ComplexityEasy, deadline: daysFromNow(2)},
	}

	for _, group := range [][]taskSpec{nextUp, quickWins, reminders, events} {
		for _, spec := range group {
			if _, err := s.createTask(spec); err != nil {
				return err
			}
		}
	}

	// Long-term habits without deadlines.
	piano, err := s.createTask(taskSpec{
		title:        "Practice piano - Für Elise",
		description:  "Continue learning classical piano piece",
		taskType:     models.TypeHabit,
		priority:     models.PriorityMedium,
		complexity:   models.ComplexityMedium,
		focusContext: "Take your time, practice when you feel like it",
	})
	if err != nil {
		return err
	}
	s.pianoID = piano.ID

	english, err := s.createTask(taskSpec{
		title:        "Improve English speaking",
		description:  "Practice English conversation through online sessions",
		taskType:     models.TypeHabit,
		priority:     models.PriorityMedium,
		complexity:   models.ComplexityMedium,
		focusContext: "15-20 minutes daily practice is enough",
	})
	if err != nil {
		return err
	}
	s.englishID = english.ID

	if _, err := s.createTask(taskSpec{
		title:        "Read 'Clean Code' book",
		description:  "Finish reading the software development classic",
		taskType:     models.TypeHabit,
		priority:     models.PriorityLow,
		complexity:   models.ComplexityMedium,
		focusContext: "Read one chapter at a time, no rush",
	}); err != nil {
		return err
	}

	// A couple of completed tasks for the done state.
	completed := []taskSpec{
		{title: "Set up development environment", description: "Install necessary development tools",
			taskType: models.TypeDeadline, priority: models.PriorityHigh, complexity: models.ComplexityMedium,
			deadline: daysFromNow(-1), completedHoursAgo: 2},
		{title: "Buy groceries for the week", description: "Weekly grocery shopping",
			taskType: models.TypeDeadline, priority: models.PriorityMedium, complexity: models.ComplexityEasy,
			deadline: daysFromNow(-1), completedHoursAgo: 5},
	}
	for _, spec := range completed {
		if _, err := s.createTask(spec); err != nil {
			return err
		}
	}

	return nil
}

type taskSpec struct {
	title             string
	description       string
	taskType          models.TaskType
	priority          models.TaskPriority
	complexity        models.TaskComplexity
	deadline          *time.Time
	focusContext      string
	completedHoursAgo int
}

func (s *seeder) createTask(spec taskSpec) (*models.Task, error) {
	task := &models.Task{
		Title:         spec.title,
		Description:   spec.description,
		Type:          spec.taskType,
		Priority:      spec.priority,
		Complexity:    spec.complexity,
		Status:        models.StatusTodo,
		Deadline:      spec.deadline,
		FocusContext:  spec.focusContext,
		ProgressTotal: 1,
	}
	if spec.completedHoursAgo > 0 {
		completedAt := dateutil.Now().Add(-time.Duration(spec.completedHoursAgo) * time.Hour)
		task.Status = models.StatusDone
		task.CompletedAt = &completedAt
		task.ProgressCurrent = 1
	}
	if err := s.tasks.Save(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *seeder) createSubtask(parentID int64, title string, done bool) error {
	subtask := &models.Task{
		Title:         title,
		ParentID:      &parentID,
		Type:          models.TypeDeadline,
		Priority:      models.PriorityMedium,
		Complexity:    models.ComplexityEasy,
		Status:        models.StatusTodo,
		ProgressTotal: 1,
	}
	if done {
		completedAt := dateutil.Now().Add(-time.Hour)
		subtask.Status = models.StatusDone
		subtask.CompletedAt = &completedAt
		subtask.ProgressCurrent = 1
	}
	return s.tasks.Save(subtask)
}

// syncParentProgress mirrors subtask completion into the parent's
// progress counters the same way the task service does after updates.
func (s *seeder) syncParentProgress(parent *models.Task) error {
	subtasks, err := s.tasks.FindByParentID(parent.ID)
	if err != nil {
		return err
	}
	done := 0
	for i := range subtasks {
		if subtasks[i].IsCompleted() {
			done++
		}
	}
	parent.ProgressCurrent = done
	parent.ProgressTotal = len(subtasks)
	if done > 0 {
		parent.Status = models.StatusDoing
	}
	return s.tasks.Save(parent)
}

func (s *seeder) createSampleHabitSessions() error {
	// A week of piano practice with varying duration.
	for i := 7; i >= 1; i-- {
		minutes := 20 + i*5
		session := &models.HabitSession{
			TaskID:          s.pianoID,
			SessionDate:     dateutil.AddDays(dateutil.Today(), -i),
			DurationMinutes: minutes,
			ProgressNote:    fmt.Sprintf("Practiced for %d minutes - getting better!", minutes),
		}
		if err := s.sessions.Save(session); err != nil {
			return err
		}
	}

	// Five days of English conversation practice.
	for i := 5; i >= 1; i-- {
		quality := "good"
		if i == 1 {
			quality = "great"
		}
		session := &models.HabitSession{
			TaskID:          s.englishID,
			SessionDate:     dateutil.AddDays(dateutil.Today(), -i),
			DurationMinutes: 15,
			ProgressNote:    fmt.Sprintf("Conversation practice - %s session", quality),
		}
		if err := s.sessions.Save(session); err != nil {
			return err
		}
	}

	return nil
}

func daysFromNow(days int) *time.Time {
	t := dateutil.AddDays(dateutil.Today(), days)
	return &t
}
