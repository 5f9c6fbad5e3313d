package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"

	"pdf-insights/internal/domain"
)

// Mock logger used by service package tests.
type MockServiceLogger struct{}

func (l *MockServiceLogger) Info(msg string, fields ...interface{})             {}
func (l *MockServiceLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *MockServiceLogger) Debug(msg string, fields ...interface{})            {}
func (l *MockServiceLogger) Warn(msg string, fields ...interface{})             {}

// MockEmbedder returns deterministic vectors. Texts present in the
// vectors map get their fixed vector; any other text gets a vector
// derived from its FNV hash, so identical texts always embed
// identically and re-runs are reproducible.
type MockEmbedder struct {
	vectors    map[string][]float32
	batchCalls int
	failBatch  bool
}

func NewMockEmbedder(vectors map[string][]float32) *MockEmbedder {
	return &MockEmbedder{vectors: vectors}
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.failBatch {
		return nil, errors.New("embedding backend down")
	}
	m.batchCalls++
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := m.vectors[text]; ok {
			out[i] = v
			continue
		}
		out[i] = hashVector(text)
	}
	return out, nil
}

func hashVector(text string) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	sum := h.Sum64()
	vec := make([]float32, 8)
	for i := range vec {
		vec[i] = float32((sum>>(uint(i)*8))&0xff)/255 + 0.01
	}
	return vec
}

// MockAnalysisConfig implements domain.Config for service tests.
type MockAnalysisConfig struct {
	TopSections  int
	MMRLambda    float64
	SentencePool int
	MaxSnippets  int
	DocumentsDir string
	TaskPath     string
}

func NewMockAnalysisConfig() *MockAnalysisConfig {
	return &MockAnalysisConfig{
		TopSections:  5,
		MMRLambda:    0.5,
		SentencePool: 20,
		MaxSnippets:  5,
		DocumentsDir: "./documents",
		TaskPath:     "./input.json",
	}
}

func (c *MockAnalysisConfig) GetServerPort() string      { return "8080" }
func (c *MockAnalysisConfig) GetLogLevel() string        { return "error" }
func (c *MockAnalysisConfig) GetDocumentsDir() string    { return c.DocumentsDir }
func (c *MockAnalysisConfig) GetTaskPath() string        { return c.TaskPath }
func (c *MockAnalysisConfig) GetOutputPath() string      { return "./out.json" }
func (c *MockAnalysisConfig) GetTopSections() int        { return c.TopSections }
func (c *MockAnalysisConfig) GetMMRLambda() float64      { return c.MMRLambda }
func (c *MockAnalysisConfig) GetSentencePool() int       { return c.SentencePool }
func (c *MockAnalysisConfig) GetMaxSnippets() int        { return c.MaxSnippets }
func (c *MockAnalysisConfig) GetVertexProjectID() string { return "" }
func (c *MockAnalysisConfig) GetVertexLocation() string  { return "us-central1" }
func (c *MockAnalysisConfig) GetEmbeddingModel() string  { return "text-embedding-004" }
func (c *MockAnalysisConfig) GetSupabaseURL() string     { return "" }
func (c *MockAnalysisConfig) GetSupabaseKey() string     { return "" }

// MockDocumentSource serves pre-built documents keyed by path.
type MockDocumentSource struct {
	paths     []string
	documents map[string]*domain.PDFDocument
	failPaths map[string]bool
}

func NewMockDocumentSource() *MockDocumentSource {
	return &MockDocumentSource{
		documents: make(map[string]*domain.PDFDocument),
		failPaths: make(map[string]bool),
	}
}

func (m *MockDocumentSource) Add(path string, doc *domain.PDFDocument) {
	m.paths = append(m.paths, path)
	m.documents[path] = doc
}

func (m *MockDocumentSource) AddFailing(path string) {
	m.paths = append(m.paths, path)
	m.failPaths[path] = true
}

func (m *MockDocumentSource) ListDocuments(dir string) ([]string, error) {
	return m.paths, nil
}

func (m *MockDocumentSource) ExtractFile(path string) (*domain.PDFDocument, error) {
	if m.failPaths[path] {
		return nil, errors.New("corrupt PDF")
	}
	doc, ok := m.documents[path]
	if !ok {
		return nil, fmt.Errorf("unknown path %s", path)
	}
	return doc, nil
}

// MockTaskRepository returns a fixed task.
type MockTaskRepository struct {
	task *domain.Task
	err  error
}

func NewMockTaskRepository(task *domain.Task) *MockTaskRepository {
	return &MockTaskRepository{task: task}
}

func (m *MockTaskRepository) Load(path string) (*domain.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.task, nil
}

// headingPage builds a test page whose first line uses the given span
// and whose remaining lines share a 10pt body font.
func headingPage(number int, headingText string, headingSpan domain.Span, bodyLines ...string) domain.Page {
	rawText := headingText
	lines := []domain.Line{{Spans: []domain.Span{headingSpan}}}
	for _, body := range bodyLines {
		rawText += "\n" + body
		// Body lines repeated so the heading font stays the outlier.
		lines = append(lines,
			domain.Line{Spans: []domain.Span{{Text: body, FontSize: 10, FontName: "Helvetica"}}},
			domain.Line{Spans: []domain.Span{{Text: body, FontSize: 10, FontName: "Helvetica"}}},
		)
	}
	return domain.Page{Number: number, RawText: rawText, Lines: lines}
}
