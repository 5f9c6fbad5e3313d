package domain

import (
	"encoding/json"
	"time"

	"github.com/pgvector/pgvector-go"
)

// Task is the externally supplied job descriptor driving a run.
type Task struct {
	Persona     string `json:"persona"`
	JobToBeDone string `json:"job_to_be_done"`
}

// Validate checks that the required task fields are present.
func (t *Task) Validate() error {
	if t.Persona == "" {
		return &ValidationError{Field: "persona.role", Message: "is required"}
	}
	if t.JobToBeDone == "" {
		return &ValidationError{Field: "job_to_be_done.task", Message: "is required"}
	}
	return nil
}

// PageKey identifies one page of one document.
type PageKey struct {
	Document   string `json:"document"`
	PageNumber int    `json:"page_number"`
}

// Sentence is one sentence candidate drawn from a section body.
// Index is the sentence's position within its page's sentence list,
// which the context-window expansion relies on.
type Sentence struct {
	Text  string  `json:"text"`
	Page  PageKey `json:"page"`
	Index int     `json:"index"`
}

// RankedSection is one stage-1 result. ImportanceRank is 1-based and
// follows the diversified selection order, not raw relevance order.
type RankedSection struct {
	Document       string `json:"document"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
	PageNumber     int    `json:"page_number"`
}

// Snippet is one stage-2 result: a top-scoring sentence expanded to a
// contiguous context window from its page.
type Snippet struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

// DigestMetadata echoes the run inputs plus a processing timestamp.
type DigestMetadata struct {
	InputDocuments      []string `json:"input_documents"`
	Persona             string   `json:"persona"`
	JobToBeDone         string   `json:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp"`
}

// Digest is the final structured result of an analysis run.
type Digest struct {
	Metadata           DigestMetadata  `json:"metadata"`
	ExtractedSections  []RankedSection `json:"extracted_sections"`
	SubsectionAnalysis []Snippet       `json:"subsection_analysis"`
}

// AnalyzeRequest optionally overrides the configured input locations
// for a single run. Empty fields fall back to configuration.
type AnalyzeRequest struct {
	DocumentsDir string `json:"documents_dir,omitempty"`
	TaskPath     string `json:"task_path,omitempty"`
}

// AnalysisRun is a persisted run record.
type AnalysisRun struct {
	ID          string          `json:"id"`
	Persona     string          `json:"persona"`
	JobToBeDone string          `json:"job_to_be_done"`
	Output      json.RawMessage `json:"output"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SectionEmbedding is the stored vector for one selected section of a
// persisted run.
type SectionEmbedding struct {
	RunID          string          `json:"run_id"`
	Document       string          `json:"document"`
	PageNumber     int             `json:"page_number"`
	SectionTitle   string          `json:"section_title"`
	ImportanceRank int             `json:"importance_rank"`
	Embedding      pgvector.Vector `json:"-"`
}
