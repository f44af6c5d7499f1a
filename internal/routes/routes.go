package routes

import (
	"github.com/Sonic3k/sonic-task-manager/internal/handlers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes() *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Sonic Task Manager API is running",
		})
	})

	api := ginRouter.Group("/api")
	{
		// Task endpoints
		api.GET("/tasks", handlers.GetTasks)
		api.GET("/tasks/quick-wins", handlers.GetQuickWins)
		api.PUT("/tasks/complete-multiple", handlers.CompleteMultipleTasks)
		api.GET("/tasks/:id", handlers.GetTaskByID)
		api.POST("/tasks", handlers.CreateTask)
		api.PUT("/tasks/:id", handlers.UpdateTask)
		api.DELETE("/tasks/:id", handlers.DeleteTask)
		api.PUT("/tasks/:id/complete", handlers.CompleteTask)
		api.PUT("/tasks/:id/snooze", handlers.SnoozeTask)
		api.GET("/tasks/:id/subtasks", handlers.GetSubtasks)
		api.POST("/tasks/:id/subtasks", handlers.CreateSubtask)

		// Workspace endpoints
		api.GET("/workspace", handlers.GetTodaysWorkspace)
		api.POST("/workspace/refresh", handlers.RefreshWorkspace)
		api.PUT("/workspace/reminders/:taskId/snooze", handlers.SnoozeReminder)
		api.PUT("/workspace/reminders/:taskId/acknowledge", handlers.AcknowledgeReminder)

		// Studio endpoints
		api.GET("/studio/tasks", handlers.GetTasksPaginated)
		api.POST("/studio/tasks/search", handlers.SearchTasks)
		api.POST("/studio/tasks/bulk-update", handlers.BulkUpdateTasks)
		api.GET("/studio/stats", handlers.GetTaskStatistics)
		api.GET("/studio/health", handlers.GetStudioHealth)

		// Preferences endpoints
		api.GET("/preferences", handlers.GetAllPreferences)
		api.PUT("/preferences", handlers.SetPreferences)
		api.POST("/preferences/reset", handlers.ResetPreferences)
		api.POST("/preferences/initialize", handlers.InitializePreferences)
		api.GET("/preferences/:key", handlers.GetPreference)
		api.PUT("/preferences/:key", handlers.SetPreference)
		api.DELETE("/preferences/:key", handlers.DeletePreference)

		// Habit endpoints
		api.GET("/habits", handlers.ListHabitTasks)
		api.GET("/habits/sessions/recent", handlers.GetRecentHabitSessions)
		api.POST("/habits/:id/sessions", handlers.LogHabitSession)
		api.GET("/habits/:id/sessions", handlers.GetHabitSessions)
		api.GET("/habits/:id/sessions/latest", handlers.GetLatestHabitSession)
		api.GET("/habits/:id/sessions/count", handlers.CountHabitSessions)
	}

	return ginRouter
}
