package config

import (
	"pdf-insights/internal/domain"
	"pdf-insights/internal/repository"
	"pdf-insights/internal/service"
	"pdf-insights/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config          domain.Config
	Logger          domain.Logger
	DocumentSource  domain.DocumentSource
	TaskRepository  domain.TaskRepository
	DigestWriter    domain.DigestWriter
	Embedder        domain.Embedder
	RunRepository   domain.RunRepository // nil when persistence is not configured
	AnalysisService domain.AnalysisService
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	source := service.NewPDFExtractor(appLogger)
	taskRepo := repository.NewTaskRepository(appLogger)
	writer := repository.NewDigestWriter(appLogger)

	// The embedder is a long-lived handle reused for every encode call
	// of a run (query, headings batch, sentences batch).
	embedder := repository.NewVertexEmbedder(config, appLogger)

	var runRepo domain.RunRepository
	if config.GetSupabaseURL() != "" && config.GetSupabaseKey() != "" {
		supabaseClient := repository.NewSupabaseClient(config, appLogger)
		if err := supabaseClient.Initialize(); err != nil {
			appLogger.Warn("Run persistence disabled", "error", err)
		} else {
			runRepo = repository.NewSupabaseRunRepository(supabaseClient, appLogger)
		}
	}

	analysisService := service.NewAnalysisService(config, appLogger, source, taskRepo, embedder, runRepo)

	return &Container{
		Config:          config,
		Logger:          appLogger,
		DocumentSource:  source,
		TaskRepository:  taskRepo,
		DigestWriter:    writer,
		Embedder:        embedder,
		RunRepository:   runRepo,
		AnalysisService: analysisService,
	}
}
