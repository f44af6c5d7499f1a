package service

import (
	"testing"
	"time"

	"github.com/Sonic3k/sonic-task-manager/internal/dateutil"
	"github.com/Sonic3k/sonic-task-manager/internal/models"
	"github.com/Sonic3k/sonic-task-manager/internal/store"
	"github.com/Sonic3k/sonic-task-manager/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	return db
}

func newTestTaskService(t *testing.T) (*TaskService, store.TaskStore) {
	t.Helper()
	tasks := store.NewTaskStore(newTestDB(t))
	return NewTaskService(tasks), tasks
}

func deadlineIn(days int) *time.Time {
	d := dateutil.AddDays(dateutil.Today(), days)
	return &d
}

func TestCreateTask_Defaults(t *testing.T) {
	svc, _ := newTestTaskService(t)

	task, err := svc.CreateTask(CreateTaskInput{Title: "Write report"})
	require.NoError(t, err)

	require.Equal(t, models.StatusTodo, task.Status)
	require.Equal(t, models.PriorityMedium, task.Priority)
	require.Equal(t, models.ComplexityMedium, task.Complexity)
	require.Equal(t, models.TypeDeadline, task.Type)
	require.Equal(t, 1, task.ProgressTotal)
	require.NotZero(t, task.ID)
}

func TestCreateTask_TitleRequired(t *testing.T) {
	svc, _ := newTestTaskService(t)

	_, err := svc.CreateTask(CreateTaskInput{Title: "   "})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateTask_AutoDetection(t *testing.T) {
	svc, _ := newTestTaskService(t)

	habit, err := svc.CreateTask(CreateTaskInput{Title: "Practice guitar scales"})
	require.NoError(t, err)
	require.Equal(t, models.TypeHabit, habit.Type)

	reminder, err := svc.CreateTask(CreateTaskInput{Title: "Think about new apartment"})
	require.NoError(t, err)
	require.Equal(t, models.TypeReminder, reminder.Type)

	easy, err := svc.CreateTask(CreateTaskInput{Title: "Reply to recruiter"})
	require.NoError(t, err)
	require.Equal(t, models.ComplexityEasy, easy.Complexity)

	hard, err := svc.CreateTask(CreateTaskInput{Title: "Design onboarding flow"})
	require.NoError(t, err)
	require.Equal(t, models.ComplexityHard, hard.Complexity)

	// Explicit values are never overridden.
	explicit, err := svc.CreateTask(CreateTaskInput{
		Title:      "Research new laptop",
		Type:       models.TypeEvent,
		Complexity: models.ComplexityEasy,
	})
	require.NoError(t, err)
	require.Equal(t, models.TypeEvent, explicit.Type)
	require.Equal(t, models.ComplexityEasy, explicit.Complexity)
}

func TestCreateTask_SubtaskRules(t *testing.T) {
	svc, _ := newTestTaskService(t)

	missing := int64(999)
	_, err := svc.CreateTask(CreateTaskInput{Title: "orphan", ParentID: &missing})
	require.ErrorIs(t, err, ErrParentTaskNotFound)

	parent, err := svc.CreateTask(CreateTaskInput{Title: "parent"})
	require.NoError(t, err)

	sub, err := svc.CreateTask(CreateTaskInput{Title: "child", ParentID: &parent.ID})
	require.NoError(t, err)

	// One level only.
	_, err = svc.CreateTask(CreateTaskInput{Title: "grandchild", ParentID: &sub.ID})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCompleteTask_CascadesToSubtasks(t *testing.T) {
	svc, tasks := newTestTaskService(t)

	parent, err := svc.CreateTask(CreateTaskInput{Title: "parent"})
	require.NoError(t, err)
	for _, title := range []string{"one", "two", "three"} {
		_, err := svc.CreateTask(CreateTaskInput{Title: title, ParentID: &parent.ID})
		require.NoError(t, err)
	}

	require.NoError(t, svc.CompleteTask(parent.ID))

	got, err := tasks.FindByID(parent.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusDone, got.Status)
	require.NotNil(t, got.CompletedAt)

	subtasks, err := tasks.FindByParentID(parent.ID)
	require.NoError(t, err)
	require.Len(t, subtasks, 3)
	for _, sub := range subtasks {
		require.Equal(t, models.StatusDone, sub.Status)
		require.NotNil(t, sub.CompletedAt)
	}
}

func TestCompleteSubtask_UpdatesParentProgress(t *testing.T) {
	svc, tasks := newTestTaskService(t)

	parent, err := svc.CreateTask(CreateTaskInput{Title: "parent"})
	require.NoError(t, err)
	sub1, err := svc.CreateTask(CreateTaskInput{Title: "first", ParentID: &parent.ID})
	require.NoError(t, err)
	sub2, err := svc.CreateTask(CreateTaskInput{Title: "second", ParentID: &parent.ID})
	require.NoError(t, err)

	require.NoError(t, svc.CompleteTask(sub1.ID))

	got, err := tasks.FindByID(parent.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.ProgressCurrent)
	require.Equal(t, 2, got.ProgressTotal)
	require.Equal(t, models.StatusDoing, got.Status)

	require.NoError(t, svc.CompleteTask(sub2.ID))

	got, err = tasks.FindByID(parent.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.ProgressCurrent)
	require.Equal(t, models.StatusDone, got.Status)
	require.NotNil(t, got.CompletedAt)
}

func TestSnoozeTask_HidesFromActiveSet(t *testing.T) {
	svc, _ := newTestTaskService(t)

	task, err := svc.CreateTask(CreateTaskInput{Title: "later"})
	require.NoError(t, err)

	until := dateutil.Now().AddDate(0, 0, 3)
	require.NoError(t, svc.SnoozeTask(task.ID, until))

	active, err := svc.GetAllActiveTasks()
	require.NoError(t, err)
	for _, a := range active {
		require.NotEqual(t, task.ID, a.ID)
	}

	got, err := svc.GetTaskByID(task.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusSnoozed, got.Status)
	require.NotNil(t, got.SnoozedUntil)
}

func TestDeleteTask_RemovesSubtasks(t *testing.T) {
	svc, tasks := newTestTaskService(t)

	parent, err := svc.CreateTask(CreateTaskInput{Title: "parent"})
	require.NoError(t, err)
	sub, err := svc.CreateTask(CreateTaskInput{Title: "child", ParentID: &parent.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(parent.ID))

	_, err = tasks.FindByID(parent.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = tasks.FindByID(sub.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteTask_NotFound(t *testing.T) {
	svc, _ := newTestTaskService(t)
	require.ErrorIs(t, svc.DeleteTask(12345), ErrTaskNotFound)
}

func TestGetTaskByID_LoadsSubtasksAndDerivedFields(t *testing.T) {
	svc, _ := newTestTaskService(t)

	parent, err := svc.CreateTask(CreateTaskInput{Title: "parent", Deadline: deadlineIn(-2)})
	require.NoError(t, err)
	_, err = svc.CreateTask(CreateTaskInput{Title: "child", ParentID: &parent.ID})
	require.NoError(t, err)

	got, err := svc.GetTaskByID(parent.ID)
	require.NoError(t, err)
	require.Len(t, got.Subtasks, 1)
	require.Equal(t, "overdue", got.UrgencyLevel)
	require.NotNil(t, got.DaysUntilDeadline)
	require.Equal(t, -2, *got.DaysUntilDeadline)
}

func TestFindQuickWinTasks(t *testing.T) {
	svc, _ := newTestTaskService(t)

	_, err := svc.CreateTask(CreateTaskInput{
		Title: "Call bank", Priority: models.PriorityHigh, Complexity: models.ComplexityEasy,
	})
	require.NoError(t, err)
	_, err = svc.CreateTask(CreateTaskInput{
		Title: "Slow burn", Priority: models.PriorityHigh, Complexity: models.ComplexityHard,
	})
	require.NoError(t, err)

	wins, err := svc.FindQuickWinTasks()
	require.NoError(t, err)
	require.Len(t, wins, 1)
	require.Equal(t, "Call bank", wins[0].Title)
}
