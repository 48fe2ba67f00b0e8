package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"civicconnect-be/config"
	"civicconnect-be/controllers"
	"civicconnect-be/jobs"
	"civicconnect-be/models"
	"civicconnect-be/routes"
	"civicconnect-be/services"
	"civicconnect-be/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db := config.ConnectDB()
	if db == nil {
		log.Fatal("Failed to connect to MongoDB")
	}
	log.Println("MongoDB connection established successfully!")

	config.ConnectRedis()

	issueCollection := config.GetCollection("issues")
	commentCollection := config.GetCollection("comments")
	userCollection := config.GetCollection("users")

	if err := models.EnsureIssueIndexes(issueCollection); err != nil {
		log.Printf("Failed to ensure issue indexes: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	issueStore := store.NewMongoIssueStore(issueCollection)
	queryService := services.NewIssueQueryService(issueStore)
	retention := services.NewRetentionPolicy(config.RetentionWindow())
	cleanupService := services.NewCleanupService(issueStore, retention, logger)
	mlValidator := services.NewMLValidator(os.Getenv("ML_API_URL"), logger)

	cleanupJob := jobs.NewCleanupJob(cleanupService, config.CleanupSchedule(), config.CleanupLocation(), logger)
	if err := cleanupJob.Start(); err != nil {
		log.Fatalf("Failed to start cleanup job: %v", err)
	}
	defer cleanupJob.Stop()

	issueController := controllers.NewIssueController(
		issueCollection, commentCollection, userCollection,
		queryService, mlValidator, config.DefaultRadiusMeters(),
	)
	adminController := controllers.NewAdminController(cleanupJob, cleanupService)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGIN"); origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	}
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsConfig))

	routes.AuthRoutes(r)
	routes.IssueRoutes(r, issueController)
	routes.AdminRoutes(r, adminController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "CivicConnect API is running"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
