package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Sonic3k/sonic-task-manager/internal/database"
	"github.com/Sonic3k/sonic-task-manager/internal/dateutil"
	"github.com/Sonic3k/sonic-task-manager/internal/models"
	"github.com/Sonic3k/sonic-task-manager/internal/service"
	"github.com/Sonic3k/sonic-task-manager/internal/store"

	"github.com/gin-gonic/gin"
)

// BulkUpdateRequest represents the request payload for a bulk operation
type BulkUpdateRequest struct {
	TaskIDs       []int64 `json:"taskIds" binding:"required"`
	Operation     string  `json:"operation" binding:"required"`
	SnoozeDays    *int    `json:"snoozeDays"`
	NewStatus     *string `json:"newStatus"`
	NewPriority   *string `json:"newPriority"`
	NewComplexity *string `json:"newComplexity"`
	NewDeadline   *string `json:"newDeadline"`
}

// SearchTasksRequest is the body-based variant of the studio filter
type SearchTasksRequest struct {
	Status       *string `json:"status"`
	Priority     *string `json:"priority"`
	Complexity   *string `json:"complexity"`
	Type         *string `json:"type"`
	DeadlineFrom string  `json:"deadlineFrom"`
	DeadlineTo   string  `json:"deadlineTo"`
	SearchQuery  string  `json:"searchQuery"`
	HasSubtasks  *bool   `json:"hasSubtasks"`
	IsOverdue    *bool   `json:"isOverdue"`
	IsUrgent     *bool   `json:"isUrgent"`
}

func pageRequestFromQuery(c *gin.Context) store.PageRequest {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil || size < 1 {
		size = 20
	}
	// Without an explicit sort key the listing leads with the smart
	// ordering so overdue and urgent tasks surface first.
	return store.PageRequest{
		Page:    page,
		Size:    size,
		SortBy:  c.DefaultQuery("sortBy", "smart"),
		SortDir: strings.ToLower(c.DefaultQuery("sortDir", "desc")),
	}
}

func filterFromQuery(c *gin.Context) *store.TaskFilter {
	filter := &store.TaskFilter{SearchQuery: c.Query("search")}

	if v := c.Query("status"); v != "" {
		status := models.TaskStatus(v)
		filter.Status = &status
	}
	if v := c.Query("priority"); v != "" {
		priority := models.TaskPriority(v)
		filter.Priority = &priority
	}
	if v := c.Query("complexity"); v != "" {
		complexity := models.TaskComplexity(v)
		filter.Complexity = &complexity
	}
	if v := c.Query("type"); v != "" {
		taskType := models.TaskType(v)
		filter.Type = &taskType
	}

	// Invalid date strings are ignored, matching the lenient query contract.
	filter.DeadlineFrom = dateutil.ParseDate(c.Query("deadlineFrom"))
	filter.DeadlineTo = dateutil.ParseDate(c.Query("deadlineTo"))

	for param, dst := range map[string]**bool{
		"hasSubtasks": &filter.HasSubtasks,
		"isOverdue":   &filter.IsOverdue,
		"isUrgent":    &filter.IsUrgent,
	} {
		if v := c.Query(param); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = &b
			}
		}
	}

	return filter
}

// GetTasksPaginated handles GET /api/studio/tasks
// Paginated task listing with the full studio filter set.
func GetTasksPaginated(c *gin.Context) {
	result, err := newTaskService().GetTasksPaginated(filterFromQuery(c), pageRequestFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, PaginatedTaskResponse{
			BaseResponse: errorResponse("Failed to fetch tasks", err.Error()),
			Tasks:        []TaskDTO{},
		})
		return
	}

	c.JSON(http.StatusOK, PaginatedTaskResponse{
		BaseResponse: BaseResponse{Success: true},
		Tasks:        toTaskDTOs(result.Tasks),
		Pagination:   &result.Pagination,
	})
}

// SearchTasks handles POST /api/studio/tasks/search
// Same query as GetTasksPaginated but with the filter in the body.
func SearchTasks(c *gin.Context) {
	var req SearchTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, PaginatedTaskResponse{
			BaseResponse: errorResponse("Invalid request payload", err.Error()),
			Tasks:        []TaskDTO{},
		})
		return
	}

	filter := &store.TaskFilter{
		SearchQuery:  req.SearchQuery,
		DeadlineFrom: dateutil.ParseDate(req.DeadlineFrom),
		DeadlineTo:   dateutil.ParseDate(req.DeadlineTo),
		HasSubtasks:  req.HasSubtasks,
		IsOverdue:    req.IsOverdue,
		IsUrgent:     req.IsUrgent,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		filter.Status = &status
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		filter.Priority = &priority
	}
	if req.Complexity != nil {
		complexity := models.TaskComplexity(*req.Complexity)
		filter.Complexity = &complexity
	}
	if req.Type != nil {
		taskType := models.TaskType(*req.Type)
		filter.Type = &taskType
	}

	result, err := newTaskService().GetTasksPaginated(filter, pageRequestFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, PaginatedTaskResponse{
			BaseResponse: errorResponse("Failed to search tasks", err.Error()),
			Tasks:        []TaskDTO{},
		})
		return
	}

	c.JSON(http.StatusOK, PaginatedTaskResponse{
		BaseResponse: BaseResponse{Success: true},
		Tasks:        toTaskDTOs(result.Tasks),
		Pagination:   &result.Pagination,
	})
}

// BulkUpdateTasks handles POST /api/studio/tasks/bulk-update
func BulkUpdateTasks(c *gin.Context) {
	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, BulkOperationResponse{
			BaseResponse: errorResponse("Invalid request payload", err.Error()),
		})
		return
	}
	if len(req.TaskIDs) == 0 {
		c.JSON(http.StatusBadRequest, BulkOperationResponse{
			BaseResponse: errorResponse("No task IDs provided", ""),
		})
		return
	}
	if strings.TrimSpace(req.Operation) == "" {
		c.JSON(http.StatusBadRequest, BulkOperationResponse{
			BaseResponse: errorResponse("No operation specified", ""),
		})
		return
	}

	input := service.BulkUpdateInput{
		TaskIDs:    req.TaskIDs,
		Operation:  strings.ToLower(req.Operation),
		SnoozeDays: req.SnoozeDays,
	}
	if req.NewStatus != nil {
		status := models.TaskStatus(*req.NewStatus)
		input.NewStatus = &status
	}
	if req.NewPriority != nil {
		priority := models.TaskPriority(*req.NewPriority)
		input.NewPriority = &priority
	}
	if req.NewComplexity != nil {
		complexity := models.TaskComplexity(*req.NewComplexity)
		input.NewComplexity = &complexity
	}
	if req.NewDeadline != nil {
		input.NewDeadline = dateutil.ParseDate(*req.NewDeadline)
	}

	result, err := newTaskService().BulkUpdateTasks(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOperation), errors.Is(err, service.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, BulkOperationResponse{
				BaseResponse: errorResponse("Failed to process bulk operation", err.Error()),
			})
		default:
			c.JSON(http.StatusInternalServerError, BulkOperationResponse{
				BaseResponse: errorResponse("Failed to process bulk operation", err.Error()),
			})
		}
		return
	}

	message := "All tasks processed successfully"
	if !result.IsCompleteSuccess {
		message = fmt.Sprintf("Processed %d/%d tasks successfully", result.SuccessCount, result.TotalRequested)
	}
	c.JSON(http.StatusOK, BulkOperationResponse{
		BaseResponse: BaseResponse{Success: result.IsCompleteSuccess, Message: message},
		Result:       result,
	})
}

// GetStudioHealth handles GET /api/studio/health
// Cheap liveness probe that also proves the task table is reachable.
func GetStudioHealth(c *gin.Context) {
	count, err := store.NewTaskStore(database.GetDB()).CountAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Studio API unhealthy", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Studio API is running",
		"totalTasks": count,
	})
}

// GetTaskStatistics handles GET /api/studio/stats
func GetTaskStatistics(c *gin.Context) {
	stats, err := newTaskService().GetTaskStatistics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, StatsResponse{
			BaseResponse: errorResponse("Failed to fetch statistics", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		BaseResponse: okResponse("Statistics retrieved successfully"),
		Stats:        stats,
	})
}
