package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ertugcetrefli-afk/3dcloud/internal/config"
	"github.com/ertugcetrefli-afk/3dcloud/internal/converter"
	"github.com/ertugcetrefli-afk/3dcloud/internal/database"
	"github.com/ertugcetrefli-afk/3dcloud/internal/handlers"
	"github.com/ertugcetrefli-afk/3dcloud/internal/middleware"
	"github.com/ertugcetrefli-afk/3dcloud/internal/pipeline"
	"github.com/ertugcetrefli-afk/3dcloud/internal/poster"
	"github.com/ertugcetrefli-afk/3dcloud/internal/supabase"
)

func main() {
	// Load .env for local development; in production the platform injects env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required: set it to your Supabase PostgreSQL connection string")
	}

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(); err != nil {
		migrator.Close()
		log.Fatalf("Migration failed: %v", err)
	}
	migrator.Close()
	log.Println("Migrations completed successfully")

	storageClient, err := supabase.NewStorageClient(
		cfg.SupabaseURL,
		cfg.SupabaseServiceKey,
		cfg.UploadsBucket,
		cfg.ModelsBucket,
		cfg.PostersBucket,
	)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	realtimeClient, err := supabase.NewRealtimeClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	converterClient := converter.NewClient(cfg.ConverterBaseURL, cfg.ConverterTimeout)
	httpConverter := converter.New(converterClient)
	posterGenerator := poster.NewGenerator(cfg.FallbackPosterURL)

	orchestrator := pipeline.NewOrchestrator(dbClient, storageClient, httpConverter, posterGenerator, realtimeClient)

	projectsHandler := handlers.NewProjectsHandler(dbClient, storageClient, orchestrator)
	uploadHandler := handlers.NewUploadHandler(dbClient, storageClient, orchestrator)
	convertHandler := handlers.NewConvertHandler(orchestrator)
	statusHandler := handlers.NewStatusHandler(dbClient)
	configsHandler := handlers.NewConfigsHandler(dbClient)
	hotspotsHandler := handlers.NewHotspotsHandler(dbClient)
	embedHandler := handlers.NewEmbedHandler(dbClient)
	analyticsHandler := handlers.NewAnalyticsHandler(dbClient)
	apiHandler := handlers.NewAPIHandler(dbClient, storageClient, orchestrator)
	healthHandler := handlers.NewHealthHandler()

	router := gin.Default()
	router.Use(middleware.CORS())

	// Health check (no auth)
	router.GET("/health", healthHandler.Health)

	// View tracking is called from embedded viewers, so it carries no auth.
	router.POST("/api/v1/projects/:project_id/views", embedHandler.TrackView)

	// Authenticated API
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	api.POST("/projects", projectsHandler.CreateProject)
	api.GET("/projects", projectsHandler.ListProjects)
	api.GET("/projects/:project_id", projectsHandler.GetProject)
	api.PATCH("/projects/:project_id", projectsHandler.RenameProject)
	api.DELETE("/projects/:project_id", projectsHandler.DeleteProject)

	api.POST("/projects/:project_id/upload", uploadHandler.Upload)
	api.POST("/projects/:project_id/reconvert", projectsHandler.Reconvert)
	api.POST("/convert", convertHandler.Convert)
	api.GET("/projects/:project_id/status", statusHandler.GetStatus)

	api.GET("/projects/:project_id/config", configsHandler.GetActiveConfig)
	api.PUT("/projects/:project_id/config", configsHandler.SaveConfig)

	api.GET("/projects/:project_id/hotspots", hotspotsHandler.ListHotspots)
	api.POST("/projects/:project_id/hotspots", hotspotsHandler.CreateHotspot)
	api.PUT("/projects/:project_id/hotspots/:hotspot_id", hotspotsHandler.UpdateHotspot)
	api.DELETE("/projects/:project_id/hotspots/:hotspot_id", hotspotsHandler.DeleteHotspot)

	api.GET("/projects/:project_id/embed", embedHandler.GetEmbedCode)
	api.GET("/projects/:project_id/analytics", analyticsHandler.GetAnalytics)

	// Public API (API key, Studio plan)
	public := router.Group("/api/public")
	public.Use(middleware.APIKeyMiddleware(dbClient))

	public.GET("/projects", apiHandler.ListProjects)
	public.POST("/convert", apiHandler.Convert)
	public.GET("/analytics", apiHandler.GetAnalytics)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
