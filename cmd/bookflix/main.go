package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/bookflix/bookflix/internal/api"
	"github.com/bookflix/bookflix/internal/auth"
	"github.com/bookflix/bookflix/internal/catalog"
	"github.com/bookflix/bookflix/internal/storage"
	"github.com/bookflix/bookflix/internal/store"
)

func main() {
	// Command-line flags
	urlFlag := flag.String("url", "", "Server bind address (e.g., :8080 or 0.0.0.0:8080)")
	flag.Parse()

	// Optional .env file; environment variables win
	_ = godotenv.Load()

	// Configuration
	dataDir := getEnv("BOOKFLIX_DATA_DIR", "./data")
	port := getEnv("BOOKFLIX_PORT", "8080")
	storageKind := getEnv("BOOKFLIX_STORAGE", "sqlite")

	// Determine bind address: flag takes precedence, then env, then default
	bindAddr := ":" + port
	if *urlFlag != "" {
		bindAddr = *urlFlag
	}

	// Initialize persistence
	var backend storage.Backend
	switch storageKind {
	case "memory":
		backend = storage.NewMemory()
	case "sqlite":
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		db, err := storage.NewDatabase(filepath.Join(dataDir, "bookflix.db"))
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		backend = db
	default:
		log.Fatalf("Unknown BOOKFLIX_STORAGE value: %s", storageKind)
	}
	defer backend.Close()

	// Initialize catalog client and reading-list store
	books := catalog.NewClient()
	library := store.New(backend)

	// Initialize handlers
	handler := api.NewHandler(books, library, backend)
	authHandler := api.NewAuthHandler(backend)

	// Set up Gin router
	r := gin.Default()

	// Enable CORS for the web client
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", handler.HealthCheck)

	// API routes
	apiGroup := r.Group("/api")
	{
		// Auth routes (public)
		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.RefreshToken)
		}

		// Catalog browsing (public)
		booksGroup := apiGroup.Group("/books")
		{
			booksGroup.GET("/search", handler.SearchBooks)
			booksGroup.GET("/trending", handler.GetTrendingBooks)
			booksGroup.GET("/category/:category", handler.GetBooksByCategory)
			booksGroup.GET("/mood/:mood", handler.GetBooksByMood)
			booksGroup.GET("/:id", handler.GetBook)
		}
		comicsGroup := apiGroup.Group("/comics")
		{
			comicsGroup.GET("/superheroes", handler.GetSuperheroComics)
			comicsGroup.GET("/publisher/:publisher", handler.GetComicsByPublisher)
		}

		// Personal library (requires authentication)
		me := apiGroup.Group("/me")
		me.Use(auth.AuthMiddleware())
		{
			me.GET("/library", handler.GetLibrary)
			me.GET("/library/events", handler.LibraryEvents)

			me.POST("/bucket", handler.AddToBucketList)
			me.GET("/bucket/:bookId", handler.GetBucketEntry)
			me.PATCH("/bucket/:bookId/status", handler.UpdateBookStatus)
			me.DELETE("/bucket/:bookId", handler.RemoveFromBucketList)

			me.PUT("/reviews/:bookId", handler.PutReview)
			me.GET("/reviews", handler.GetReviews)

			me.GET("/diary", handler.GetDiary)
			me.GET("/stats", handler.GetStats)
			me.GET("/stats/yearly", handler.GetYearlyStats)
			me.GET("/history", handler.GetHistory)
		}

		// Current user
		protected := apiGroup.Group("")
		protected.Use(auth.AuthMiddleware())
		{
			protected.GET("/auth/me", authHandler.GetCurrentUser)
		}
	}

	// Start server
	log.Printf("BookFlix server starting on %s", bindAddr)
	log.Printf("Storage: %s", storageKind)
	if err := r.Run(bindAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
