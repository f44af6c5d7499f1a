package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Sonic3k/sonic-task-manager/internal/database"
	"github.com/Sonic3k/sonic-task-manager/internal/dateutil"
	"github.com/Sonic3k/sonic-task-manager/internal/models"
	"github.com/Sonic3k/sonic-task-manager/internal/service"
	"github.com/Sonic3k/sonic-task-manager/internal/store"

	"github.com/gin-gonic/gin"
)

// LogHabitSessionRequest represents the request payload for logging a session
type LogHabitSessionRequest struct {
	SessionDate     string `json:"sessionDate"`
	DurationMinutes int    `json:"durationMinutes"`
	ProgressNote    string `json:"progressNote"`
}

func newHabitService() *service.HabitService {
	db := database.GetDB()
	return service.NewHabitService(store.NewTaskStore(db), store.NewHabitSessionStore(db))
}

func habitError(c *gin.Context, id int64, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, errorResponse(fmt.Sprintf("Task with ID %d not found", id), ""))
	case errors.Is(err, service.ErrNotHabitTask):
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Sprintf("Task with ID %d is not a habit", id), ""))
	default:
		c.JSON(http.StatusInternalServerError, errorResponse(fallback, err.Error()))
	}
}

// ListHabitTasks handles GET /api/habits
func ListHabitTasks(c *gin.Context) {
	habits, err := newHabitService().ListHabitTasks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to fetch habits", err.Error()))
		return
	}

	c.JSON(http.StatusOK, TaskListResponse{
		BaseResponse: BaseResponse{Success: true},
		Tasks:        toTaskDTOs(habits),
	})
}

// LogHabitSession handles POST /api/habits/:id/sessions
func LogHabitSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req LogHabitSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request payload", err.Error()))
		return
	}

	input := service.LogSessionInput{
		TaskID:          id,
		DurationMinutes: req.DurationMinutes,
		ProgressNote:    req.ProgressNote,
		SessionDate:     dateutil.ParseDate(req.SessionDate),
	}

	session, err := newHabitService().LogSession(input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, errorResponse("Duration cannot be negative", ""))
			return
		}
		habitError(c, id, err, "Failed to log session")
		return
	}

	dto := toHabitSessionDTO(session)
	c.JSON(http.StatusCreated, HabitSessionResponse{
		BaseResponse: okResponse("Session logged successfully"),
		Session:      &dto,
	})
}

// GetHabitSessions handles GET /api/habits/:id/sessions
// Optional from/to query params narrow the date range.
func GetHabitSessions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	svc := newHabitService()

	from := dateutil.ParseDate(c.Query("from"))
	to := dateutil.ParseDate(c.Query("to"))

	var (
		sessions []models.HabitSession
		err      error
	)
	if from != nil && to != nil {
		sessions, err = svc.GetSessionsInRange(id, *from, *to)
	} else {
		sessions, err = svc.GetSessions(id)
	}
	if err != nil {
		habitError(c, id, err, "Failed to fetch sessions")
		return
	}

	c.JSON(http.StatusOK, HabitSessionListResponse{
		BaseResponse: BaseResponse{Success: true},
		Sessions:     toHabitSessionDTOs(sessions),
	})
}

// GetLatestHabitSession handles GET /api/habits/:id/sessions/latest
func GetLatestHabitSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := newHabitService().GetLatestSession(id)
	if err != nil {
		habitError(c, id, err, "Failed to fetch latest session")
		return
	}
	if session == nil {
		c.JSON(http.StatusOK, HabitSessionResponse{
			BaseResponse: okResponse("No sessions logged yet"),
		})
		return
	}

	dto := toHabitSessionDTO(session)
	c.JSON(http.StatusOK, HabitSessionResponse{
		BaseResponse: BaseResponse{Success: true},
		Session:      &dto,
	})
}

// CountHabitSessions handles GET /api/habits/:id/sessions/count
func CountHabitSessions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	count, err := newHabitService().CountSessions(id)
	if err != nil {
		habitError(c, id, err, "Failed to count sessions")
		return
	}

	c.JSON(http.StatusOK, HabitSessionListResponse{
		BaseResponse: BaseResponse{Success: true},
		Sessions:     []HabitSessionDTO{},
		Count:        count,
	})
}

// GetRecentHabitSessions handles GET /api/habits/sessions/recent?days=N
func GetRecentHabitSessions(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 {
		days = 7
	}

	sessions, err := newHabitService().GetRecentSessions(days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to fetch recent sessions", err.Error()))
		return
	}

	c.JSON(http.StatusOK, HabitSessionListResponse{
		BaseResponse: BaseResponse{Success: true},
		Sessions:     toHabitSessionDTOs(sessions),
	})
}
