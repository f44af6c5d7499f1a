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

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	Priority      string `json:"priority"`
	Complexity    string `json:"complexity"`
	ParentID      *int64 `json:"parentId"`
	Deadline      string `json:"deadline"`
	ScheduledDate string `json:"scheduledDate"`
	FocusContext  string `json:"focusContext"`
	Tags          string `json:"tags"`
	Context       string `json:"context"`
}

func (r *CreateTaskRequest) toInput() service.CreateTaskInput {
	input := service.CreateTaskInput{
		Title:        r.Title,
		Description:  r.Description,
		Type:         models.TaskType(r.Type),
		Priority:     models.TaskPriority(r.Priority),
		Complexity:   models.TaskComplexity(r.Complexity),
		ParentID:     r.ParentID,
		FocusContext: r.FocusContext,
		Tags:         r.Tags,
		Context:      r.Context,
	}
	if t, ok := dateutil.ParseDateFlexible(r.Deadline); ok {
		input.Deadline = &t
	}
	if t, ok := dateutil.ParseDateFlexible(r.ScheduledDate); ok {
		input.ScheduledDate = &t
	}
	return input
}

func newTaskService() *service.TaskService {
	return service.NewTaskService(store.NewTaskStore(database.GetDB()))
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid task ID", ""))
		return 0, false
	}
	return id, true
}

// GetTasks handles GET /api/tasks
// Returns all active tasks (not done, not currently snoozed).
func GetTasks(c *gin.Context) {
	tasks, err := newTaskService().GetAllActiveTasks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to fetch tasks", err.Error()))
		return
	}

	c.JSON(http.StatusOK, TaskListResponse{
		BaseResponse: BaseResponse{Success: true},
		Tasks:        toTaskDTOs(tasks),
	})
}

// GetTaskByID handles GET /api/tasks/:id
func GetTaskByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := newTaskService().GetTaskByID(id)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(fmt.Sprintf("Task with ID %d not found", id), ""))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to fetch task", err.Error()))
		return
	}

	dto := toTaskDTO(task)
	c.JSON(http.StatusOK, TaskResponse{
		BaseResponse: BaseResponse{Success: true},
		Task:         &dto,
	})
}

// CreateTask handles POST /api/tasks
func CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request payload", err.Error()))
		return
	}

	task, err := newTaskService().CreateTask(req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrParentTaskNotFound):
			c.JSON(http.StatusNotFound, errorResponse("Parent task not found", ""))
		case errors.Is(err, service.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, errorResponse("Invalid request payload", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, errorResponse("Failed to create task", err.Error()))
		}
		return
	}

	dto := toTaskDTO(task)
	c.JSON(http.StatusCreated, TaskResponse{
		BaseResponse: okResponse("Task created successfully"),
		Task:         &dto,
	})
}

// UpdateTask handles PUT /api/tasks/:id
// This is a full replace of the editable fields.
func UpdateTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request payload", err.Error()))
		return
	}

	task, err := newTaskService().UpdateTask(id, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(fmt.Sprintf("Task with ID %d not found", id), ""))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to update task", err.Error()))
		return
	}

	dto := toTaskDTO(task)
	c.JSON(http.StatusOK, TaskResponse{
		BaseResponse: okResponse("Task updated successfully"),
		Task:         &dto,
	})
}

// DeleteTask handles DELETE /api/tasks/:id
// Deleting a top-level task deletes its subtasks as well.
func DeleteTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := newTaskService().DeleteTask(id); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(fmt.Sprintf("Task with ID %d not found", id), ""))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to delete task", err.Error()))
		return
	}

	c.JSON(http.StatusOK, okResponse("Task deleted successfully"))
}

// CompleteTask handles PUT /api/tasks/:id/complete
// Completing a top-level task cascades to its subtasks.
func CompleteTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := newTaskService().CompleteTask(id); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(fmt.Sprintf("Task with ID %d not found", id), ""))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to complete task", err.Error()))
		return
	}

	c.JSON(http.StatusOK, okResponse("Task completed successfully"))
}

// SnoozeTask handles PUT /api/tasks/:id/snooze?days=N
func SnoozeTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "1"))
	if err != nil || days <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse("Days must be greater than 0", ""))
		return
	}

	until := dateutil.Now().AddDate(0, 0, days)
	if err := newTaskService().SnoozeTask(id, until); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(fmt.Sprintf("Task with ID %d not found", id), ""))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to snooze task", err.Error()))
		return
	}

	c.JSON(http.StatusOK, okResponse(fmt.Sprintf("Task snoozed for %d day(s)", days)))
}

// GetSubtasks handles GET /api/tasks/:id/subtasks
func GetSubtasks(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	svc := newTaskService()
	if _, err := svc.GetTaskByID(id); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(fmt.Sprintf("Parent task with ID %d not found", id), ""))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to fetch subtasks", err.Error()))
		return
	}

	subtasks, err := svc.GetSubtasks(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to fetch subtasks", err.Error()))
		return
	}

	c.JSON(http.StatusOK, TaskListResponse{
		BaseResponse: BaseResponse{Success: true},
		Tasks:        toTaskDTOs(subtasks),
	})
}

// CreateSubtask handles POST /api/tasks/:id/subtasks
func CreateSubtask(c *gin.Context) {
	parentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request payload", err.Error()))
		return
	}
	req.ParentID = &parentID

	task, err := newTaskService().CreateTask(req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrParentTaskNotFound):
			c.JSON(http.StatusNotFound, errorResponse(fmt.Sprintf("Parent task with ID %d not found", parentID), ""))
		case errors.Is(err, service.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, errorResponse("Invalid request payload", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, errorResponse("Failed to create subtask", err.Error()))
		}
		return
	}

	dto := toTaskDTO(task)
	c.JSON(http.StatusCreated, TaskResponse{
		BaseResponse: okResponse("Subtask created successfully"),
		Task:         &dto,
	})
}

// GetQuickWins handles GET /api/tasks/quick-wins
func GetQuickWins(c *gin.Context) {
	tasks, err := newTaskService().FindQuickWinTasks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to fetch quick wins", err.Error()))
		return
	}

	c.JSON(http.StatusOK, TaskListResponse{
		BaseResponse: BaseResponse{Success: true},
		Tasks:        toTaskDTOs(tasks),
	})
}

// CompleteMultipleTasks handles PUT /api/tasks/complete-multiple
func CompleteMultipleTasks(c *gin.Context) {
	var taskIDs []int64
	if err := c.ShouldBindJSON(&taskIDs); err != nil || len(taskIDs) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse("Task IDs list cannot be empty", ""))
		return
	}

	svc := newTaskService()
	completed := 0
	for _, id := range taskIDs {
		if err := svc.CompleteTask(id); err == nil {
			completed++
		}
	}

	c.JSON(http.StatusOK, okResponse(fmt.Sprintf("Completed %d out of %d tasks", completed, len(taskIDs))))
}
