package service

import (
	"context"
	"fmt"
	"math"

	"pdf-insights/internal/domain"
)

// HeadingRanker performs stage 1: it scores section headings against
// the query and selects a diversified top set via maximal marginal
// relevance. The MMR tradeoff pulls in the single best match while
// keeping near-duplicate headings (repeated section titles across
// documents) from crowding out topical diversity.
type HeadingRanker struct {
	embedder domain.Embedder
	logger   domain.Logger
	topK     int
	lambda   float64
}

func NewHeadingRanker(embedder domain.Embedder, logger domain.Logger, topK int, lambda float64) *HeadingRanker {
	return &HeadingRanker{
		embedder: embedder,
		logger:   logger,
		topK:     topK,
		lambda:   lambda,
	}
}

// Rank embeds all catalog headings in one batch and returns the
// selected catalog indices in selection order (the seed first, then
// MMR order), plus the heading embeddings for reuse by persistence.
// The selection has size min(K, len(catalog)).
func (r *HeadingRanker) Rank(ctx context.Context, catalog []domain.PageSection, queryVec []float32) ([]int, [][]float32, error) {
	if len(catalog) == 0 || r.topK <= 0 {
		return nil, nil, nil
	}

	headings := make([]string, len(catalog))
	for i, section := range catalog {
		headings[i] = section.Heading
	}
	embeddings, err := r.embedder.EmbedBatch(ctx, headings)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to embed section headings: %w", err)
	}
	if len(embeddings) != len(catalog) {
		return nil, nil, fmt.Errorf("embedding count mismatch: got %d for %d headings", len(embeddings), len(catalog))
	}

	relevance := make([]float64, len(catalog))
	for i, emb := range embeddings {
		relevance[i] = CosineSimilarity(queryVec, emb)
	}

	// Seed with the single most relevant heading so the top raw match
	// always appears, then grow the set greedily by MMR score.
	seed := argmax(relevance)
	selected := []int{seed}
	taken := make([]bool, len(catalog))
	taken[seed] = true

	for len(selected) < r.topK && len(selected) < len(catalog) {
		best := -1
		bestScore := math.Inf(-1)
		for i := range catalog {
			if taken[i] {
				continue
			}
			maxSim := math.Inf(-1)
			for _, j := range selected {
				if sim := CosineSimilarity(embeddings[i], embeddings[j]); sim > maxSim {
					maxSim = sim
				}
			}
			score := r.lambda*relevance[i] - (1-r.lambda)*maxSim
			// Strict greater-than keeps ties on the first-encountered index.
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		taken[best] = true
		selected = append(selected, best)
	}

	r.logger.Debug("Stage 1 selection complete", "candidates", len(catalog), "selected", len(selected))
	return selected, embeddings, nil
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
