package service

import (
	"testing"

	"github.com/Sonic3k/sonic-task-manager/internal/dateutil"
	"github.com/Sonic3k/sonic-task-manager/internal/models"
	"github.com/Sonic3k/sonic-task-manager/internal/store"

	"github.com/stretchr/testify/require"
)

func newTestHabitService(t *testing.T) (*HabitService, *TaskService) {
	t.Helper()
	db := newTestDB(t)
	tasks := store.NewTaskStore(db)
	return NewHabitService(tasks, store.NewHabitSessionStore(db)), NewTaskService(tasks)
}

func createHabit(t *testing.T, svc *TaskService, title string) *models.Task {
	t.Helper()
	habit, err := svc.CreateTask(CreateTaskInput{Title: title, Type: models.TypeHabit})
	require.NoError(t, err)
	return habit
}

func TestLogSession(t *testing.T) {
	habits, tasks := newTestHabitService(t)
	habit := createHabit(t, tasks, "Practice piano")

	session, err := habits.LogSession(LogSessionInput{
		TaskID:          habit.ID,
		DurationMinutes: 25,
		ProgressNote:    "  worked on the second movement  ",
	})
	require.NoError(t, err)

	require.NotZero(t, session.ID)
	require.Equal(t, habit.ID, session.TaskID)
	require.Equal(t, 25, session.DurationMinutes)
	require.Equal(t, "worked on the second movement", session.ProgressNote)
	require.Equal(t, dateutil.FormatDate(dateutil.Today()), dateutil.FormatDate(session.SessionDate))

	// Logging moves a todo habit into doing.
	got, err := tasks.GetTaskByID(habit.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusDoing, got.Status)
}

func TestLogSession_Guards(t *testing.T) {
	habits, tasks := newTestHabitService(t)

	_, err := habits.LogSession(LogSessionInput{TaskID: 404, DurationMinutes: 10})
	require.ErrorIs(t, err, ErrTaskNotFound)

	deadline, err := tasks.CreateTask(CreateTaskInput{Title: "ship it"})
	require.NoError(t, err)
	_, err = habits.LogSession(LogSessionInput{TaskID: deadline.ID, DurationMinutes: 10})
	require.ErrorIs(t, err, ErrNotHabitTask)

	habit := createHabit(t, tasks, "Practice piano")
	_, err = habits.LogSession(LogSessionInput{TaskID: habit.ID, DurationMinutes: -5})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGetSessions_NewestFirst(t *testing.T) {
	habits, tasks := newTestHabitService(t)
	habit := createHabit(t, tasks, "Practice piano")

	for _, daysAgo := range []int{3, 1, 2} {
		date := dateutil.DaysAgo(daysAgo)
		_, err := habits.LogSession(LogSessionInput{
			TaskID:          habit.ID,
			SessionDate:     &date,
			DurationMinutes: 15,
		})
		require.NoError(t, err)
	}

	sessions, err := habits.GetSessions(habit.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	// Rows come back from sqlite in UTC, so compare by formatted date.
	require.Equal(t, dateutil.FormatDate(dateutil.DaysAgo(1)), dateutil.FormatDate(sessions[0].SessionDate))
	require.Equal(t, dateutil.FormatDate(dateutil.DaysAgo(3)), dateutil.FormatDate(sessions[2].SessionDate))
}

func TestGetSessionsInRange(t *testing.T) {
	habits, tasks := newTestHabitService(t)
	habit := createHabit(t, tasks, "Practice piano")

	for _, daysAgo := range []int{10, 5, 1} {
		date := dateutil.DaysAgo(daysAgo)
		_, err := habits.LogSession(LogSessionInput{
			TaskID:          habit.ID,
			SessionDate:     &date,
			DurationMinutes: 15,
		})
		require.NoError(t, err)
	}

	sessions, err := habits.GetSessionsInRange(habit.ID, dateutil.DaysAgo(7), dateutil.Today())
	require.NoError(t, err)
	require.Len(t, sessions, 2)
}

func TestGetLatestSessionAndCount(t *testing.T) {
	habits, tasks := newTestHabitService(t)
	habit := createHabit(t, tasks, "Practice piano")

	latest, err := habits.GetLatestSession(habit.ID)
	require.NoError(t, err)
	require.Nil(t, latest)

	for _, daysAgo := range []int{4, 2} {
		date := dateutil.DaysAgo(daysAgo)
		_, err := habits.LogSession(LogSessionInput{
			TaskID:          habit.ID,
			SessionDate:     &date,
			DurationMinutes: 20,
		})
		require.NoError(t, err)
	}

	latest, err = habits.GetLatestSession(habit.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.Equal(t, dateutil.FormatDate(dateutil.DaysAgo(2)), dateutil.FormatDate(latest.SessionDate))

	count, err := habits.CountSessions(habit.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func TestListHabitTasks(t *testing.T) {
	habits, tasks := newTestHabitService(t)
	createHabit(t, tasks, "Practice piano")
	_, err := tasks.CreateTask(CreateTaskInput{Title: "ship it"})
	require.NoError(t, err)

	list, err := habits.ListHabitTasks()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, models.TypeHabit, list[0].Type)
}
