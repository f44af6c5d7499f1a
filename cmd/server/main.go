package main

import (
	"log"
	"os"

	"github.com/Sonic3k/sonic-task-manager/internal/database"
	"github.com/Sonic3k/sonic-task-manager/internal/routes"
	"github.com/Sonic3k/sonic-task-manager/internal/seed"
)

func main() {
	// Init database
	database.InitDB()

	// Seed sample data on first run unless disabled
	if os.Getenv("SONIC_SKIP_SEED") == "" {
		if err := seed.SeedIfEmpty(database.GetDB()); err != nil {
			log.Fatal("Failed to seed database: ", err)
		}
	}

	// Setup the routes
	ginRoutes := routes.SetupRoutes()

	port := os.Getenv("SONIC_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port :%s", port)
	log.Println("API endpoints:")
	log.Println("  GET    /api/workspace")
	log.Println("  POST   /api/workspace/refresh")
	log.Println("  GET    /api/tasks")
	log.Println("  POST   /api/tasks")
	log.Println("  PUT    /api/tasks/:id")
	log.Println("  PUT    /api/tasks/:id/complete")
	log.Println("  PUT    /api/tasks/:id/snooze")
	log.Println("  DELETE /api/tasks/:id")
	log.Println("  GET    /api/studio/tasks")
	log.Println("  POST   /api/studio/tasks/bulk-update")
	log.Println("  GET    /api/preferences")
	log.Println("  GET    /api/habits")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
