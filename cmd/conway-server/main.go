package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/augustawind/conway-web/api/handlers"
	"github.com/augustawind/conway-web/internal/db"
	"github.com/augustawind/conway-web/internal/repository"
	"github.com/augustawind/conway-web/internal/server"
	"github.com/augustawind/conway-web/internal/sim"
	pkgsim "github.com/augustawind/conway-web/pkg/sim"
)

func main() {
	// Get configuration from environment
	port := getEnv("PORT", "8080")
	dbPath := getEnv("DB_PATH", "data/patterns.db")

	// Ensure the data directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	// Initialize database
	database, err := db.InitDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	// Initialize repository and seed the sample patterns
	patternRepo := repository.NewPatternRepository(database)
	if err := patternRepo.SeedSamples(context.Background()); err != nil {
		log.Fatalf("Failed to seed sample patterns: %v", err)
	}

	// Initialize the connection manager and websocket handler. The dev server
	// replays the sample patterns as canned generations; a real engine plugs
	// in through the same sim.Factory.
	connManager := server.NewManager()
	defer connManager.Close()

	factory := func() pkgsim.Simulator {
		return sim.NewReplay([]string{
			repository.SamplePatterns["glider"],
			repository.SamplePatterns["blinker"],
			repository.SamplePatterns["toad"],
			repository.SamplePatterns["beacon"],
		}, true)
	}
	wsHandler := server.NewHandler(connManager, factory)

	// Initialize handlers
	patternHandler := handlers.NewPatternHandler(patternRepo)
	wsRoutes := handlers.NewWebSocketHandler(wsHandler)

	// Initialize Gin router
	r := gin.Default()

	// Enable CORS for development
	r.Use(corsMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":      "ok",
			"connections": connManager.Count(),
		})
	})

	// Websocket endpoint
	wsRoutes.RegisterRoutes(&r.RouterGroup)

	// API routes
	api := r.Group("/api")
	{
		patternHandler.RegisterRoutes(api)
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down server...")
		connManager.Close()
		db.CloseDB()
		os.Exit(0)
	}()

	// Start server
	log.Printf("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// corsMiddleware returns a CORS middleware for development.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
