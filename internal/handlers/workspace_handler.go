package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/Sonic3k/sonic-task-manager/internal/database"
	"github.com/Sonic3k/sonic-task-manager/internal/service"
	"github.com/Sonic3k/sonic-task-manager/internal/store"

	"github.com/gin-gonic/gin"
)

func newWorkspaceService() *service.WorkspaceService {
	db := database.GetDB()
	tasks := store.NewTaskStore(db)
	return service.NewWorkspaceService(tasks, newReminderService())
}

func newReminderService() *service.ReminderService {
	db := database.GetDB()
	tasks := store.NewTaskStore(db)
	prefs := service.NewPreferencesService(store.NewPreferenceStore(db))
	return service.NewReminderService(tasks, prefs)
}

// GetTodaysWorkspace handles GET /api/workspace
// This is the main endpoint the frontend polls. A calculation failure
// degrades to an empty workspace rather than an error response.
func GetTodaysWorkspace(c *gin.Context) {
	workspace, err := newWorkspaceService().CalculateTodaysWorkspace()
	if err != nil {
		log.Println("Error calculating workspace:", err)
		c.JSON(http.StatusOK, WorkspaceResponse{
			BaseResponse: okResponse("Workspace loaded with default data"),
			Workspace:    toWorkspaceDTO(service.EmptyWorkspace()),
		})
		return
	}

	c.JSON(http.StatusOK, WorkspaceResponse{
		BaseResponse: BaseResponse{Success: true},
		Workspace:    toWorkspaceDTO(workspace),
	})
}

// RefreshWorkspace handles POST /api/workspace/refresh
func RefreshWorkspace(c *gin.Context) {
	workspace, err := newWorkspaceService().RefreshWorkspace()
	if err != nil {
		log.Println("Error refreshing workspace:", err)
		c.JSON(http.StatusOK, WorkspaceResponse{
			BaseResponse: okResponse("Workspace refreshed with default data"),
			Workspace:    toWorkspaceDTO(service.EmptyWorkspace()),
		})
		return
	}

	c.JSON(http.StatusOK, WorkspaceResponse{
		BaseResponse: okResponse("Workspace refreshed successfully"),
		Workspace:    toWorkspaceDTO(workspace),
	})
}

// SnoozeReminder handles PUT /api/workspace/reminders/:taskId/snooze?days=N
// Unknown ids and non-reminder tasks are ignored on purpose.
func SnoozeReminder(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("taskId"), 10, 64)
	if err != nil || taskID < 1 {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid task ID", ""))
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse("Days must be greater than 0", ""))
		return
	}

	if err := newReminderService().SnoozeReminder(taskID, days); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Failed to snooze reminder", err.Error()))
		return
	}

	c.JSON(http.StatusOK, okResponse(fmt.Sprintf("Reminder snoozed for %d day(s)", days)))
}

// AcknowledgeReminder handles PUT /api/workspace/reminders/:taskId/acknowledge
func AcknowledgeReminder(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("taskId"), 10, 64)
	if err != nil || taskID < 1 {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid task ID", ""))
		return
	}

	if err := newReminderService().AcknowledgeReminder(taskID); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Failed to acknowledge reminder", err.Error()))
		return
	}

	c.JSON(http.StatusOK, okResponse("Reminder acknowledged"))
}
