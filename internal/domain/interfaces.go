package domain

import "context"

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string

	GetDocumentsDir() string
	GetTaskPath() string
	GetOutputPath() string

	GetTopSections() int
	GetMMRLambda() float64
	GetSentencePool() int
	GetMaxSnippets() int

	GetVertexProjectID() string
	GetVertexLocation() string
	GetEmbeddingModel() string

	GetSupabaseURL() string
	GetSupabaseKey() string
}

// Embedder is the text-embedding collaborator. It is held as a
// long-lived handle for a whole run: load once, reuse for every encode
// call. The selection algorithms are agnostic to the model behind it.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch encodes all texts in a single vectorized call.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// DocumentSource supplies parsed input documents. Implementations own
// raw PDF byte parsing; the analysis core only reads the result.
type DocumentSource interface {
	// ListDocuments returns the PDF file paths under dir in a stable
	// (sorted) order. The catalog index space depends on this order.
	ListDocuments(dir string) ([]string, error)
	ExtractFile(path string) (*PDFDocument, error)
}

// TaskRepository loads the externally supplied task descriptor.
type TaskRepository interface {
	Load(path string) (*Task, error)
}

// DigestWriter persists a digest to a local file.
type DigestWriter interface {
	Write(path string, digest *Digest) error
}

// RunRepository persists analysis runs to remote storage. Persistence
// is best-effort: failures are logged, never fatal to a run.
type RunRepository interface {
	SaveRun(ctx context.Context, digest *Digest) (*AnalysisRun, error)
	SaveSectionEmbedding(ctx context.Context, emb *SectionEmbedding) error
	LatestRun(ctx context.Context) (*AnalysisRun, error)
}

// AnalysisService runs the full extraction + ranking pipeline.
type AnalysisService interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (*Digest, error)
}
