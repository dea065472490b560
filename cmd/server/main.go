package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/joho/godotenv"

	"labelguard/application"
	"labelguard/database"
	"labelguard/domain/contracts"
	jobsdom "labelguard/domain/jobs"
	"labelguard/domain/labels"
	"labelguard/infrastructure/config"
	"labelguard/infrastructure/crypto"
	"labelguard/infrastructure/repositories"
	"labelguard/interfaces/web/handlers"
	"labelguard/interfaces/web/presenters"
	"labelguard/logging"
	"labelguard/platform/events"
	"labelguard/platform/executors"
)

func main() {
	// Create app-wide context for graceful shutdown
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// Initialize configuration
	loadEnvironment()
	cfg := config.LoadAppConfigFromEnv()

	// Initialize logging
	logger := initializeLogging(cfg)

	// Initialize database
	db := initializeDatabase(cfg, logger)
	defer db.Close()

	// Build dependencies with app context
	deps := buildDependencies(appCtx, db, cfg, logger)

	// Setup routes and start server
	router := setupRoutes(deps, cfg)
	startServer(router, cfg.HTTPAddr, logger, appCancel)
}

// ApplicationServices holds application services.
type ApplicationServices struct {
	ClassificationService application.ClassificationService
	LabelService          *application.LabelService
	GroundingService      *application.GroundingService
	JobService            application.JobService
	EventBus              *events.ClassificationEventBus
}

// PresentationLayer groups all presentation components
type PresentationLayer struct {
	// Presenters
	LabelPresenter          *presenters.LabelPresenter
	ClassificationPresenter *presenters.ClassificationPresenter
	GroundingPresenter      *presenters.GroundingPresenter
	JobPresenter            *presenters.JobPresenter

	// Handlers
	LabelHandlers     *handlers.LabelHandlers
	ClassifyHandlers  *handlers.ClassifyHandlers
	GroundingHandlers *handlers.GroundingHandlers
	JobHandlers       *handlers.JobHandlers
}

// Dependencies holds all application dependencies organized by layer
type Dependencies struct {
	// Infrastructure
	DB     *database.Database
	Logger *logging.Logger

	// Repositories
	LabelRepo     contracts.LabelRepository
	GroundingRepo contracts.GroundingRepository

	// Application Layer
	Services *ApplicationServices

	// Presentation Layer
	Presentation *PresentationLayer
}

func loadEnvironment() {
	if err := godotenv.Load(); err != nil {
		println("No .env file found, using environment variables")
	} else {
		println("Loaded configuration from .env file")
	}
}

func initializeLogging(cfg *config.AppConfig) *logging.Logger {
	logger := logging.NewLogger(cfg.Logging)
	logging.SetDefault(logger)

	logger.Info("Application starting",
		"version", "1.0.0",
		"log_level", cfg.Logging.Level,
		"log_format", cfg.Logging.Format,
		"db_path", cfg.Database.Path,
	)

	return logger
}

func initializeDatabase(cfg *config.AppConfig, logger *logging.Logger) *database.Database {
	db, err := database.New(*cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	return db
}

// RepositoryBundle holds all repository implementations
type RepositoryBundle struct {
	LabelRepo     contracts.LabelRepository
	GroundingRepo contracts.GroundingRepository
}

// buildRepositories creates all repository implementations. The label
// repository is wrapped with a short-lived cache because every
// classification resolves labels by priority.
func buildRepositories(db *database.Database, cfg *config.AppConfig) *RepositoryBundle {
	labelRepo := repositories.NewSqliteLabelRepository(db)
	if cfg.LabelCacheTTL > 0 {
		labelRepo = repositories.NewCachedLabelRepository(labelRepo, cfg.LabelCacheTTL)
	}
	groundingRepo := repositories.NewSqliteGroundingRepository(db, labelRepo)

	return &RepositoryBundle{
		LabelRepo:     labelRepo,
		GroundingRepo: groundingRepo,
	}
}

// buildApplicationServices creates application services with dependency injection.
func buildApplicationServices(appCtx context.Context, cfg *config.AppConfig, repos *RepositoryBundle) *ApplicationServices {
	// Create event bus for classification events
	eventBus := events.NewClassificationEventBus()

	// Shared collaborators
	encryptor := crypto.NewLabelEncryptor(cfg.EncryptionSecret)
	validator := labels.NewValidator()

	// Core services
	classificationService := application.NewClassificationService(repos.LabelRepo, encryptor, validator)
	labelService := application.NewLabelService(repos.LabelRepo, validator, eventBus)
	groundingService := application.NewGroundingService(
		repos.GroundingRepo,
		repos.LabelRepo,
		classificationService,
		encryptor,
		eventBus,
	)

	// Batch classification executor and job service
	batchExecutor := executors.NewBatchClassificationExecutor(groundingService, cfg.BatchWorkers)
	registry := application.NewJobExecutorRegistry()
	registry.RegisterExecutor(jobsdom.JobTypeBatchClassification, batchExecutor)
	jobService := application.NewJobService(appCtx, registry, eventBus)

	return &ApplicationServices{
		ClassificationService: classificationService,
		LabelService:          labelService,
		GroundingService:      groundingService,
		JobService:            jobService,
		EventBus:              eventBus,
	}
}

// buildPresentationLayer creates all presenters and handlers
func buildPresentationLayer(services *ApplicationServices) *PresentationLayer {
	// Build presenters (view logic)
	labelPresenter := presenters.NewLabelPresenter()
	classificationPresenter := presenters.NewClassificationPresenter()
	groundingPresenter := presenters.NewGroundingPresenter()
	jobPresenter := presenters.NewJobPresenter()

	// Build handlers - orchestrate services & presenters
	labelHandlers := handlers.NewLabelHandlers(services.LabelService, labelPresenter)
	classifyHandlers := handlers.NewClassifyHandlers(
		services.ClassificationService,
		services.LabelService,
		classificationPresenter,
		labelPresenter,
	)
	groundingHandlers := handlers.NewGroundingHandlers(
		services.GroundingService,
		groundingPresenter,
		classificationPresenter,
		labelPresenter,
	)
	jobHandlers := handlers.NewJobHandlers(services.JobService, jobPresenter)

	// Setup audit trail event handlers
	setupEventHandlers(services)

	return &PresentationLayer{
		LabelPresenter:          labelPresenter,
		ClassificationPresenter: classificationPresenter,
		GroundingPresenter:      groundingPresenter,
		JobPresenter:            jobPresenter,
		LabelHandlers:           labelHandlers,
		ClassifyHandlers:        classifyHandlers,
		GroundingHandlers:       groundingHandlers,
		JobHandlers:             jobHandlers,
	}
}

// buildDependencies creates all application dependencies
func buildDependencies(appCtx context.Context, db *database.Database, cfg *config.AppConfig, logger *logging.Logger) *Dependencies {
	// Build each layer
	repos := buildRepositories(db, cfg)
	services := buildApplicationServices(appCtx, cfg, repos)
	presentation := buildPresentationLayer(services)

	return &Dependencies{
		DB:            db,
		LabelRepo:     repos.LabelRepo,
		GroundingRepo: repos.GroundingRepo,
		Services:      services,
		Presentation:  presentation,
		Logger:        logger,
	}
}

func setupRoutes(deps *Dependencies, cfg *config.AppConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	setupHTTPLogging(r, deps, cfg)
	r.Use(middleware.Recoverer)

	// System endpoints
	setupSystemRoutes(r, deps)

	// Main application routes
	setupAPIRoutes(r, deps)

	return r
}

func setupHTTPLogging(r *chi.Mux, deps *Dependencies, cfg *config.AppConfig) {
	if cfg.HTTPLogPath == "" {
		// No HTTP logging configured, skip
		return
	}

	logFile, err := os.OpenFile(cfg.HTTPLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		deps.Logger.Error("Failed to open HTTP log file", "error", err, "path", cfg.HTTPLogPath)
		return
	}
	// Note: logFile is not closed here as it needs to stay open for the server lifetime

	httpLogger := httplog.NewLogger("labelguard", httplog.Options{
		Writer: logFile,
		JSON:   true,
	})
	r.Use(httplog.RequestLogger(httpLogger))

	deps.Logger.Info("HTTP request logging enabled", "path", cfg.HTTPLogPath)
}

func setupSystemRoutes(r *chi.Mux, deps *Dependencies) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		stats, err := deps.DB.Health()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		response := map[string]interface{}{
			"status":   "ok",
			"database": stats,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	})
}

func setupAPIRoutes(r *chi.Mux, deps *Dependencies) {
	p := deps.Presentation

	// Label catalogue
	r.Get("/api/labels", p.LabelHandlers.ListLabels)
	r.Post("/api/labels", p.LabelHandlers.CreateLabel)
	r.Get("/api/labels/export", p.LabelHandlers.ExportLabels)
	r.Post("/api/labels/import", p.LabelHandlers.ImportLabels)
	r.Get("/api/labels/{labelID}", p.LabelHandlers.GetLabel)
	r.Put("/api/labels/{labelID}", p.LabelHandlers.UpdateLabel)
	r.Delete("/api/labels/{labelID}", p.LabelHandlers.DeleteLabel)
	r.Post("/api/labels/merge", p.ClassifyHandlers.MergeLabels)

	// Classification
	r.Post("/api/classify", p.ClassifyHandlers.Classify)
	r.Post("/api/classify/label", p.ClassifyHandlers.ClassifyAndLabel)
	r.Post("/api/classify/apply", p.ClassifyHandlers.ApplyLabel)

	// Grounding items
	r.Post("/api/grounding", p.GroundingHandlers.IngestContent)
	r.Get("/api/grounding", p.GroundingHandlers.ListItems)
	r.Post("/api/grounding/merge", p.GroundingHandlers.MergeEffectiveLabel)
	r.Get("/api/grounding/{groundingID}", p.GroundingHandlers.GetItem)
	r.Delete("/api/grounding/{groundingID}", p.GroundingHandlers.DeleteItem)
	r.Get("/api/grounding/{groundingID}/response", p.GroundingHandlers.GetResponse)
	r.Post("/api/grounding/{groundingID}/reclassify", p.GroundingHandlers.Reclassify)
	r.Post("/api/grounding/{groundingID}/decrypt", p.GroundingHandlers.Decrypt)

	// Batch classification jobs
	r.Post("/api/jobs/batch", p.JobHandlers.StartBatchClassification)
	r.Get("/api/jobs", p.JobHandlers.ListJobs)
	r.Get("/api/jobs/{jobID}", p.JobHandlers.GetJob)
	r.Post("/api/jobs/{jobID}/cancel", p.JobHandlers.CancelJob)
}

func startServer(router *chi.Mux, addr string, logger *logging.Logger, appCancel context.CancelFunc) {
	server := &http.Server{Addr: addr, Handler: router}

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sig
		logger.Info("Shutdown signal received")

		// Cancel app-wide context first to signal running jobs to stop
		logger.Info("Cancelling app context...")
		appCancel()

		shutdownCtx, cancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				logger.Error("Graceful shutdown timed out, forcing exit")
				os.Exit(1)
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
			os.Exit(1)
		}
		serverStopCtx()
	}()

	logger.Info("Server starting", "address", addr)
	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}

	<-serverCtx.Done()
	logger.Info("Server stopped")
}

// setupEventHandlers wires up the audit trail handlers for classification events
func setupEventHandlers(services *ApplicationServices) {
	auditHandlers := events.NewAuditLogEventHandlers()
	auditHandlers.RegisterHandlers(services.EventBus)
}
