// @title           PPT Workbench Backend API
// @version         1.0.0
// @description     Backend API for AI-assisted presentation generation. Handles document parsing, outline generation, per-slide image generation via Gemini, and PDF/PPTX/ZIP export.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3001
// @BasePath  /

package main

import (
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"ppt-workbench-backend/docs"
	"ppt-workbench-backend/internal/ai"
	"ppt-workbench-backend/internal/config"
	"ppt-workbench-backend/internal/database"
	"ppt-workbench-backend/internal/export"
	"ppt-workbench-backend/internal/gemini"
	"ppt-workbench-backend/internal/handlers"
	"ppt-workbench-backend/internal/middleware"
	"ppt-workbench-backend/internal/services"
	"ppt-workbench-backend/internal/store"
)

func main() {
	// Load .env if present, real environment wins
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		baseURL, err := url.Parse(cfg.BaseURL)
		if err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	db, err := database.Open(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	migrator := database.NewMigrator(db)
	if err := migrator.Run(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully")

	st := store.New(db)

	geminiClient := gemini.NewClient(cfg.GeminiAPIBaseURL, cfg.GeminiAPIKey)
	aiService := ai.NewService(geminiClient, cfg.GeminiTextModel, cfg.GeminiImageModel)

	artifacts, err := export.NewArtifactStore(cfg.ExportDir)
	if err != nil {
		log.Fatalf("Failed to initialize export directory: %v", err)
	}

	projectService := services.NewProjectService(st, aiService, cfg)
	slideService := services.NewSlideService(st, aiService, cfg)
	exportService := services.NewExportService(st, artifacts)

	projectHandler := handlers.NewProjectHandler(projectService, slideService)
	slideHandler := handlers.NewSlideHandler(slideService)
	documentHandler := handlers.NewDocumentHandler()
	exportHandler := handlers.NewExportHandler(exportService)
	settingsHandler := handlers.NewSettingsHandler(st)

	router := gin.Default()

	router.Use(middleware.CORS(cfg.CORSOrigins))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api")

	// Projects
	api.POST("/project/generate-outline", projectHandler.GenerateOutline)
	api.GET("/project/:id", projectHandler.GetProject)
	api.DELETE("/project/:id", projectHandler.DeleteProject)
	api.POST("/project/:id/generate-images", projectHandler.GenerateImages)

	// Slides
	api.GET("/slide/:id", slideHandler.GetSlide)
	api.PATCH("/slide/:id", slideHandler.UpdateSlide)
	api.POST("/slide/generate-image", slideHandler.GenerateImage)

	// Documents
	api.POST("/document/parse", documentHandler.ParseDocument)

	// Export
	api.POST("/export/pdf/:projectId", exportHandler.ExportPDF)
	api.POST("/export/pptx/:projectId", exportHandler.ExportPPTX)
	api.POST("/export/images/:projectId", exportHandler.ExportImages)
	api.GET("/export/download/:filename", exportHandler.Download)
	api.DELETE("/export/cleanup", exportHandler.Cleanup)

	// Settings
	api.GET("/settings", settingsHandler.GetSettings)
	api.PUT("/settings", settingsHandler.UpdateSettings)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
