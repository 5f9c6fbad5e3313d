package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pdf-insights/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

// SupabaseRunRepository implements domain.RunRepository on the
// analysis_runs and section_embeddings tables.
type SupabaseRunRepository struct {
	supabaseClient *SupabaseClient
	logger         domain.Logger
}

func NewSupabaseRunRepository(supabaseClient *SupabaseClient, logger domain.Logger) domain.RunRepository {
	return &SupabaseRunRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// SaveRun inserts one run row with the full digest as JSON.
func (r *SupabaseRunRepository) SaveRun(ctx context.Context, digest *domain.Digest) (*domain.AnalysisRun, error) {
	client := r.supabaseClient.GetSupabaseClient()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	output, err := json.Marshal(digest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal digest: %w", err)
	}

	data := map[string]interface{}{
		"persona":         digest.Metadata.Persona,
		"job_to_be_done":  digest.Metadata.JobToBeDone,
		"input_documents": digest.Metadata.InputDocuments,
		"output":          json.RawMessage(output),
		"created_at":      time.Now(),
	}

	resp, _, err := client.From("analysis_runs").Insert(data, false, "", "", "").Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}

	var rows []domain.AnalysisRun
	if err := json.Unmarshal(resp, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert returned no rows")
	}
	return &rows[0], nil
}

// SaveSectionEmbedding inserts one selected section's heading vector.
// Upserts on (run_id, document, page_number) so a retried persistence
// pass does not hit the unique constraint.
func (r *SupabaseRunRepository) SaveSectionEmbedding(ctx context.Context, emb *domain.SectionEmbedding) error {
	client := r.supabaseClient.GetSupabaseClient()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	data := map[string]interface{}{
		"run_id":          emb.RunID,
		"document":        emb.Document,
		"page_number":     emb.PageNumber,
		"section_title":   emb.SectionTitle,
		"importance_rank": emb.ImportanceRank,
		"embedding":       emb.Embedding,
		"created_at":      time.Now(),
	}

	_, _, err := client.From("section_embeddings").Insert(data, true, "run_id,document,page_number", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to save section embedding: %w", err)
	}
	return nil
}

// LatestRun returns the most recent persisted run.
func (r *SupabaseRunRepository) LatestRun(ctx context.Context) (*domain.AnalysisRun, error) {
	client := r.supabaseClient.GetSupabaseClient()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	resp, _, err := client.From("analysis_runs").
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	var rows []domain.AnalysisRun
	if err := json.Unmarshal(resp, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrRunNotFound
	}
	return &rows[0], nil
}
