package service

import (
	"context"
	"time"

	"pdf-insights/internal/domain"
	apperrors "pdf-insights/pkg/errors"

	"github.com/pgvector/pgvector-go"
)

// AnalysisService runs the whole pipeline as one synchronous pass:
// documents are parsed and structured sequentially, then the two
// ranking stages run in order. Stage 2 depends on stage 1's selected
// set, so the stages never run concurrently; the only scale-sensitive
// operations are the two batch embedding calls.
type AnalysisService struct {
	config     domain.Config
	logger     domain.Logger
	source     domain.DocumentSource
	tasks      domain.TaskRepository
	embedder   domain.Embedder
	runs       domain.RunRepository // nil when persistence is disabled
	structurer *PageStructurer
	headings   *HeadingRanker
	sentences  *SentenceRanker
	now        func() time.Time
}

func NewAnalysisService(
	config domain.Config,
	logger domain.Logger,
	source domain.DocumentSource,
	tasks domain.TaskRepository,
	embedder domain.Embedder,
	runs domain.RunRepository,
) *AnalysisService {
	return &AnalysisService{
		config:     config,
		logger:     logger,
		source:     source,
		tasks:      tasks,
		embedder:   embedder,
		runs:       runs,
		structurer: NewPageStructurer(logger),
		headings:   NewHeadingRanker(embedder, logger, config.GetTopSections(), config.GetMMRLambda()),
		sentences:  NewSentenceRanker(embedder, logger, config.GetSentencePool(), config.GetMaxSnippets()),
		now:        time.Now,
	}
}

// Analyze runs extraction, structuring, both ranking stages, and
// assembly for one batch. A document that fails to parse is skipped
// with a diagnostic; a failed embedding call aborts the run, since
// every downstream stage depends on it.
func (s *AnalysisService) Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.Digest, error) {
	documentsDir := req.DocumentsDir
	if documentsDir == "" {
		documentsDir = s.config.GetDocumentsDir()
	}
	taskPath := req.TaskPath
	if taskPath == "" {
		taskPath = s.config.GetTaskPath()
	}

	task, err := s.tasks.Load(taskPath)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Running analysis", "query", task.JobToBeDone, "persona", task.Persona)

	paths, err := s.source.ListDocuments(documentsDir)
	if err != nil {
		return nil, apperrors.NewMissingInputError("documents directory unavailable", err)
	}

	var inputDocuments []string
	var sectionsByDocument [][]domain.PageSection
	for _, path := range paths {
		doc, err := s.source.ExtractFile(path)
		if err != nil {
			// Partial-failure tolerance at document granularity.
			s.logger.Warn("Skipping document that failed to parse", "path", path, "error", err)
			continue
		}
		s.logger.Debug("Extracted document", "name", doc.Name, "pages", len(doc.Pages))
		sections := make([]domain.PageSection, 0, len(doc.Pages))
		for i := range doc.Pages {
			sections = append(sections, s.structurer.Structure(doc.Name, &doc.Pages[i]))
		}
		inputDocuments = append(inputDocuments, doc.Name)
		sectionsByDocument = append(sectionsByDocument, sections)
	}
	if len(inputDocuments) == 0 {
		return nil, apperrors.NewMissingInputError("no documents could be processed", domain.ErrNoDocuments)
	}

	catalog := BuildCatalog(sectionsByDocument)
	if len(catalog) == 0 {
		s.logger.Warn("No sections with headings qualified for ranking")
	}

	queryVec, err := s.embedder.Embed(ctx, task.JobToBeDone)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to embed query", err)
	}

	selected, headingEmbeddings, err := s.headings.Rank(ctx, catalog, queryVec)
	if err != nil {
		return nil, apperrors.NewProcessingError("heading ranking failed", err)
	}

	snippets, err := s.sentences.Rank(ctx, catalog, selected, queryVec)
	if err != nil {
		return nil, apperrors.NewProcessingError("sentence ranking failed", err)
	}

	digest := AssembleDigest(task, inputDocuments, catalog, selected, snippets, s.now())

	if s.runs != nil {
		s.persistRun(ctx, digest, catalog, selected, headingEmbeddings)
	}

	return digest, nil
}

// persistRun stores the digest and the selected sections' heading
// embeddings. Best-effort: failures are logged and never fail the run.
func (s *AnalysisService) persistRun(ctx context.Context, digest *domain.Digest, catalog []domain.PageSection, selected []int, embeddings [][]float32) {
	run, err := s.runs.SaveRun(ctx, digest)
	if err != nil {
		s.logger.Warn("Failed to persist analysis run", "error", err)
		return
	}
	for rank, idx := range selected {
		section := catalog[idx]
		emb := &domain.SectionEmbedding{
			RunID:          run.ID,
			Document:       section.Document,
			PageNumber:     section.PageNumber,
			SectionTitle:   section.Heading,
			ImportanceRank: rank + 1,
			Embedding:      pgvector.NewVector(embeddings[idx]),
		}
		if err := s.runs.SaveSectionEmbedding(ctx, emb); err != nil {
			s.logger.Warn("Failed to persist section embedding", "error", err, "document", section.Document, "page", section.PageNumber)
		}
	}
	s.logger.Info("Persisted analysis run", "run_id", run.ID, "sections", len(selected))
}
