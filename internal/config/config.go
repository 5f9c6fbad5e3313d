package config

import (
	"os"
	"strconv"

	"pdf-insights/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort string
	LogLevel   string

	DocumentsDir string
	TaskPath     string
	OutputPath   string

	TopSections  int
	MMRLambda    float64
	SentencePool int
	MaxSnippets  int

	VertexProjectID string
	VertexLocation  string
	EmbeddingModel  string

	SupabaseURL string
	SupabaseKey string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort: getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "info"),

		DocumentsDir: getEnvOrDefault("DOCUMENTS_DIR", "./documents"),
		TaskPath:     getEnvOrDefault("TASK_PATH", "./input.json"),
		OutputPath:   getEnvOrDefault("OUTPUT_PATH", "./analysis_output.json"),

		TopSections:  getEnvIntOrDefault("TOP_SECTIONS", 5),
		MMRLambda:    getEnvFloatOrDefault("MMR_LAMBDA", 0.5),
		SentencePool: getEnvIntOrDefault("SENTENCE_POOL", 20),
		MaxSnippets:  getEnvIntOrDefault("MAX_SNIPPETS", 5),

		VertexProjectID: getEnvOrDefault("VERTEX_PROJECT_ID", ""),
		VertexLocation:  getEnvOrDefault("VERTEX_LOCATION", "us-central1"),
		EmbeddingModel:  getEnvOrDefault("EMBEDDING_MODEL", "text-embedding-004"),

		SupabaseURL: getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey: getEnvOrDefault("SUPABASE_SERVICE_KEY", ""),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetDocumentsDir returns the input PDF directory
func (c *AppConfig) GetDocumentsDir() string {
	return c.DocumentsDir
}

// GetTaskPath returns the task descriptor file path
func (c *AppConfig) GetTaskPath() string {
	return c.TaskPath
}

// GetOutputPath returns the digest output file path
func (c *AppConfig) GetOutputPath() string {
	return c.OutputPath
}

// GetTopSections returns the stage-1 selection size K
func (c *AppConfig) GetTopSections() int {
	return c.TopSections
}

// GetMMRLambda returns the relevance/diversity tradeoff in [0,1]
func (c *AppConfig) GetMMRLambda() float64 {
	return c.MMRLambda
}

// GetSentencePool returns the stage-2 considered-candidate count M
func (c *AppConfig) GetSentencePool() int {
	return c.SentencePool
}

// GetMaxSnippets returns the stage-2 emitted-snippet limit
func (c *AppConfig) GetMaxSnippets() int {
	return c.MaxSnippets
}

// GetVertexProjectID returns the GCP project for the embedding model
func (c *AppConfig) GetVertexProjectID() string {
	return c.VertexProjectID
}

// GetVertexLocation returns the Vertex AI region
func (c *AppConfig) GetVertexLocation() string {
	return c.VertexLocation
}

// GetEmbeddingModel returns the embedding model identifier
func (c *AppConfig) GetEmbeddingModel() string {
	return c.EmbeddingModel
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase service key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
