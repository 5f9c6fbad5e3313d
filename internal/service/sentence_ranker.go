package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"pdf-insights/internal/domain"
)

// contextRadius is the number of neighboring sentences appended on
// each side of an emitted sentence.
const contextRadius = 1

// SentenceRanker performs stage 2: it splits the sections NOT chosen
// in stage 1 into sentences, scores every sentence against the query
// in one batch, and emits the top snippets with at most one snippet
// per (document, page), each expanded to a small context window.
type SentenceRanker struct {
	embedder domain.Embedder
	logger   domain.Logger
	pool     int // candidates considered, in score order
	limit    int // snippets emitted
}

func NewSentenceRanker(embedder domain.Embedder, logger domain.Logger, pool, limit int) *SentenceRanker {
	return &SentenceRanker{
		embedder: embedder,
		logger:   logger,
		pool:     pool,
		limit:    limit,
	}
}

// Rank selects snippets from the complement of the stage-1 selection.
// The exclusion is explicit set subtraction on catalog indices; the
// catalog must be the same slice, in the same order, that stage 1 saw.
func (r *SentenceRanker) Rank(ctx context.Context, catalog []domain.PageSection, selected []int, queryVec []float32) ([]domain.Snippet, error) {
	excluded := make(map[int]bool, len(selected))
	for _, idx := range selected {
		excluded[idx] = true
	}

	// Group sentences per page key preserving original order; the
	// context-window expansion needs each page's full sentence list.
	pageSentences := make(map[domain.PageKey][]string)
	var candidates []domain.Sentence
	for i, section := range catalog {
		if excluded[i] {
			continue
		}
		key := domain.PageKey{Document: section.Document, PageNumber: section.PageNumber}
		if _, seen := pageSentences[key]; seen {
			continue
		}
		sentences := SplitSentences(section.Details)
		if len(sentences) == 0 {
			continue
		}
		pageSentences[key] = sentences
		for idx, text := range sentences {
			candidates = append(candidates, domain.Sentence{Text: text, Page: key, Index: idx})
		}
	}

	if len(candidates) == 0 {
		r.logger.Warn("No candidate sentences for subsection analysis")
		return nil, nil
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Text
	}
	embeddings, err := r.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed candidate sentences: %w", err)
	}
	if len(embeddings) != len(candidates) {
		return nil, fmt.Errorf("embedding count mismatch: got %d for %d sentences", len(embeddings), len(candidates))
	}

	scores := make([]float64, len(candidates))
	for i, emb := range embeddings {
		scores[i] = CosineSimilarity(queryVec, emb)
	}

	// Top-M by score descending; equal scores keep candidate order.
	ranked := make([]int, len(candidates))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return scores[ranked[a]] > scores[ranked[b]]
	})
	if len(ranked) > r.pool {
		ranked = ranked[:r.pool]
	}

	// Walk the ranked pool in score order, emitting a page key only
	// the first time it is seen.
	var snippets []domain.Snippet
	usedPages := make(map[domain.PageKey]bool)
	for _, idx := range ranked {
		if len(snippets) >= r.limit {
			break
		}
		candidate := candidates[idx]
		if usedPages[candidate.Page] {
			continue
		}
		usedPages[candidate.Page] = true
		snippets = append(snippets, domain.Snippet{
			Document:    candidate.Page.Document,
			RefinedText: expandContext(pageSentences[candidate.Page], candidate.Index),
			PageNumber:  candidate.Page.PageNumber,
		})
	}

	r.logger.Debug("Stage 2 selection complete", "candidates", len(candidates), "snippets", len(snippets))
	return snippets, nil
}

// expandContext joins the sentence at idx with one neighbor on each
// side where available, clipped at the page boundaries.
func expandContext(sentences []string, idx int) string {
	start := idx - contextRadius
	if start < 0 {
		start = 0
	}
	end := idx + contextRadius + 1
	if end > len(sentences) {
		end = len(sentences)
	}
	return strings.Join(sentences[start:end], " ")
}

// SplitSentences segments text on punctuation boundaries: a split
// happens after '.', '!' or '?' followed by whitespace. Empty results
// are discarded after trimming.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && isSpaceRune(runes[i+1]) {
			current.WriteRune(r)
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
			// Skip the whitespace run that triggered the split.
			for i+1 < len(runes) && isSpaceRune(runes[i+1]) {
				i++
			}
			continue
		}
		current.WriteRune(r)
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
}
