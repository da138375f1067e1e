package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"productivity-api/internal/database"
	"productivity-api/internal/overdue"
	"productivity-api/internal/realtime"
	"productivity-api/internal/routes"
)

func main() {
	// Init database
	database.InitDB()

	// Start the overdue scan loop. It writes notifications and pushes
	// them to connected websocket clients via the hub.
	stores := overdue.NewGormStores(database.GetDB())
	scanner := overdue.NewScanner(stores, stores, stores, realtime.GetHub())
	scheduler := overdue.NewScheduler(scanner, scanInterval())
	scheduler.Start()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		scheduler.Stop()
		os.Exit(0)
	}()

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8008"
	}
	log.Printf("Server starting on port :%s", port)

	if err := ginRoutes.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func scanInterval() time.Duration {
	if v := os.Getenv("SCAN_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		log.Printf("Invalid SCAN_INTERVAL %q, using default", v)
	}
	return overdue.DefaultInterval
}
