package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/Sonic3k/sonic-task-manager/internal/database"
	"github.com/Sonic3k/sonic-task-manager/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func seedHabitTask(t *testing.T, title string) int64 {
	t.Helper()
	task := models.Task{
		Title:    title,
		Status:   models.StatusTodo,
		Priority: models.PriorityMedium,
		Type:     models.TypeHabit,
	}
	require.NoError(t, database.DB.Create(&task).Error)
	return task.ID
}

func TestLogHabitSession_Success(t *testing.T) {
	setupTestDB(t)
	habitID := seedHabitTask(t, "practice piano")

	r := gin.New()
	r.POST("/api/habits/:id/sessions", LogHabitSession)
	r.GET("/api/tasks/:id", GetTaskByID)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/habits/%d/sessions", habitID),
		map[string]any{
			"durationMinutes": 25,
			"progressNote":    "worked on scales",
		})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp HabitSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotNil(t, resp.Session)
	require.Equal(t, habitID, resp.Session.TaskID)
	require.Equal(t, 25, resp.Session.DurationMinutes)
	require.Equal(t, "worked on scales", resp.Session.ProgressNote)

	// Logging the first session moves the habit into doing.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/tasks/%d", habitID), nil)
	var task TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	require.Equal(t, "doing", task.Task.Status)
}

func TestLogHabitSession_Guards(t *testing.T) {
	setupTestDB(t)

	deadline := models.Task{
		Title: "ship release", Status: models.StatusTodo,
		Priority: models.PriorityHigh, Type: models.TypeDeadline,
	}
	require.NoError(t, database.DB.Create(&deadline).Error)

	r := gin.New()
	r.POST("/api/habits/:id/sessions", LogHabitSession)

	w := doJSON(t, r, http.MethodPost, "/api/habits/999/sessions",
		map[string]any{"durationMinutes": 10})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/habits/%d/sessions", deadline.ID),
		map[string]any{"durationMinutes": 10})
	require.Equal(t, http.StatusBadRequest, w.Code)

	habitID := seedHabitTask(t, "read daily")
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/habits/%d/sessions", habitID),
		map[string]any{"durationMinutes": -5})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHabitSessions_ListsNewestFirst(t *testing.T) {
	setupTestDB(t)
	habitID := seedHabitTask(t, "learn english")

	r := gin.New()
	r.POST("/api/habits/:id/sessions", LogHabitSession)
	r.GET("/api/habits/:id/sessions", GetHabitSessions)

	for _, date := range []string{"2026-08-25", "2026-08-28"} {
		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/habits/%d/sessions", habitID),
			map[string]any{"sessionDate": date, "durationMinutes": 15})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/habits/%d/sessions", habitID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp HabitSessionListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Sessions, 2)
	require.Equal(t, "2026-08-28", resp.Sessions[0].SessionDate)
	require.Equal(t, "2026-08-25", resp.Sessions[1].SessionDate)

	// Range query narrows the result.
	w = doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/habits/%d/sessions?from=2026-08-27&to=2026-08-29", habitID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Sessions, 1)
	require.Equal(t, "2026-08-28", resp.Sessions[0].SessionDate)
}

func TestGetLatestHabitSession_EmptyHistory(t *testing.T) {
	setupTestDB(t)
	habitID := seedHabitTask(t, "morning run")

	r := gin.New()
	r.GET("/api/habits/:id/sessions/latest", GetLatestHabitSession)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/habits/%d/sessions/latest", habitID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp HabitSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "No sessions logged yet", resp.Message)
	require.Nil(t, resp.Session)
}

func TestListHabitTasks_FiltersToHabits(t *testing.T) {
	setupTestDB(t)
	seedHabitTask(t, "practice piano")
	require.NoError(t, database.DB.Create(&models.Task{
		Title: "pay rent", Status: models.StatusTodo,
		Priority: models.PriorityHigh, Type: models.TypeDeadline,
	}).Error)

	r := gin.New()
	r.GET("/api/habits", ListHabitTasks)

	w := doJSON(t, r, http.MethodGet, "/api/habits", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp TaskListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Tasks, 1)
	require.Equal(t, "practice piano", resp.Tasks[0].Title)
}

func TestCountHabitSessions(t *testing.T) {
	setupTestDB(t)
	habitID := seedHabitTask(t, "meditation")

	r := gin.New()
	r.POST("/api/habits/:id/sessions", LogHabitSession)
	r.GET("/api/habits/:id/sessions/count", CountHabitSessions)

	for i := 0; i < 3; i++ {
		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/habits/%d/sessions", habitID),
			map[string]any{"durationMinutes": 10})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/habits/%d/sessions/count", habitID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp HabitSessionListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(3), resp.Count)
}
