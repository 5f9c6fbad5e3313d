package main

import (
	"context"
	"log"
	"os"

	"pdf-insights/internal/config"
	"pdf-insights/internal/domain"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// Wiring
	container := config.NewContainer()
	logger := container.Logger
	cfg := container.Config

	logger.Info("Starting batch analysis",
		"documents_dir", cfg.GetDocumentsDir(),
		"task_path", cfg.GetTaskPath(),
		"output_path", cfg.GetOutputPath(),
	)

	digest, err := container.AnalysisService.Analyze(context.Background(), domain.AnalyzeRequest{})
	if err != nil {
		logger.Error("Analysis failed", err)
		os.Exit(1)
	}

	if err := container.DigestWriter.Write(cfg.GetOutputPath(), digest); err != nil {
		logger.Error("Failed to write digest", err)
		os.Exit(1)
	}

	logger.Info("Analysis complete",
		"sections", len(digest.ExtractedSections),
		"snippets", len(digest.SubsectionAnalysis),
	)
}
