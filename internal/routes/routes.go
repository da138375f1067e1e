package routes

import (
	"productivity-api/internal/handlers"
	"productivity-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes() *gin.Engine {
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
			"message": "Productivity API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Task endpoints
		protectedRoutes.GET("/tasks", handlers.GetTasks)
		protectedRoutes.GET("/tasks/:id", handlers.GetTaskByID)
		protectedRoutes.POST("/tasks", handlers.CreateTask)
		protectedRoutes.PUT("/tasks/:id", handlers.UpdateTask)
		protectedRoutes.PATCH("/tasks/:id/status", handlers.UpdateTaskStatus)
		protectedRoutes.DELETE("/tasks/:id", handlers.DeleteTask)
		protectedRoutes.GET("/stats", handlers.GetStats)

		// Project endpoints
		protectedRoutes.GET("/projects", handlers.GetProjects)
		protectedRoutes.POST("/projects", handlers.CreateProject)
		protectedRoutes.PUT("/projects/:id", handlers.UpdateProject)
		protectedRoutes.DELETE("/projects/:id", handlers.DeleteProject)

		// Threshold endpoints
		protectedRoutes.GET("/thresholds", handlers.GetThresholds)
		protectedRoutes.PUT("/thresholds", handlers.UpsertThreshold)
		protectedRoutes.DELETE("/thresholds/:id", handlers.DeleteThreshold)
		protectedRoutes.GET("/thresholds/effective", handlers.GetEffectiveThreshold)

		// Notification endpoints
		protectedRoutes.GET("/notifications", handlers.GetNotifications)
		protectedRoutes.PATCH("/notifications/:id/read", handlers.MarkNotificationRead)
		protectedRoutes.POST("/notifications/read-all", handlers.MarkAllNotificationsRead)
		protectedRoutes.DELETE("/notifications/:id", handlers.DeleteNotification)

		// Meeting note endpoints
		protectedRoutes.GET("/notes", handlers.GetNotes)
		protectedRoutes.POST("/notes", handlers.CreateNote)
		protectedRoutes.PUT("/notes/:id", handlers.UpdateNote)
		protectedRoutes.DELETE("/notes/:id", handlers.DeleteNote)

		// Checklist endpoints
		protectedRoutes.GET("/checklists", handlers.GetChecklists)
		protectedRoutes.GET("/checklists/:id", handlers.GetChecklistByID)
		protectedRoutes.POST("/checklists", handlers.CreateChecklist)
		protectedRoutes.DELETE("/checklists/:id", handlers.DeleteChecklist)
		protectedRoutes.POST("/checklists/:id/items", handlers.AddChecklistItem)
		protectedRoutes.PUT("/checklists/:id/items/:itemId", handlers.UpdateChecklistItem)
		protectedRoutes.DELETE("/checklists/:id/items/:itemId", handlers.DeleteChecklistItem)

		// Profile + realtime
		protectedRoutes.GET("/me", handlers.GetMe)
		protectedRoutes.GET("/ws", handlers.WebSocketHandler)
	}

	return ginRouter
}
