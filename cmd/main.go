package main

import (
	"net/http"

	"github.com/krizhnx/internyx/internal/engine"
	"github.com/krizhnx/internyx/internal/handler"
	mid "github.com/krizhnx/internyx/internal/middleware"
	"github.com/krizhnx/internyx/internal/storage"
	"github.com/krizhnx/internyx/internal/store"
	"github.com/krizhnx/internyx/pkg/config"
	"github.com/krizhnx/internyx/pkg/jwtutil"
	"github.com/krizhnx/internyx/pkg/logger"
	"github.com/krizhnx/internyx/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting internyx",
		zap.String("environment", cfg.Server.Env),
		zap.String("port", cfg.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", cfg.Metrics.Prefix))

	// Initialize the persistence gateway
	db, err := store.Open(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize the object store for attachments
	files, err := storage.NewLocal(&cfg.Storage)
	if err != nil {
		log.Fatal("Failed to initialize attachment storage", zap.Error(err))
	}
	log.Info("Attachment storage initialized", zap.String("dir", cfg.Storage.Dir))

	// The state engine: one session per owner over the shared gateway
	reg := engine.NewRegistry(db)
	h := handler.New(reg, files)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Signed download links; the signature is the access control
	e.GET("/files/:name", h.DownloadFile)

	// Application API routes - auth middleware extracts the owner identity
	api := e.Group("/api", mid.AuthMiddleware)

	appAPI := api.Group("/applications")
	appAPI.GET("", h.ListApplications)
	appAPI.POST("", h.CreateApplication)
	appAPI.POST("/saved", h.CreateSavedApplication)
	appAPI.POST("/demo", h.SeedDemoData)
	appAPI.GET("/stats", h.ApplicationStats)
	appAPI.POST("/reorder", h.ReorderApplications)
	appAPI.PUT("/:id", h.UpdateApplication)
	appAPI.PUT("/:id/status", h.UpdateApplicationStatus)
	appAPI.POST("/:id/applied", h.MarkApplied)
	appAPI.DELETE("/:id", h.DeleteApplication)
	appAPI.POST("/:id/attachments", h.UploadAttachment)
	appAPI.DELETE("/:id/attachments/:path", h.DeleteAttachment)

	api.GET("/attachments/url", h.RefreshAttachmentURL)

	api.GET("/tags", h.ListTags)
	api.POST("/tags", h.CreateTag)
	api.DELETE("/tags/:name", h.DeleteTag)

	api.GET("/preferences", h.GetPreferences)
	api.PUT("/preferences", h.UpdatePreferences)

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
