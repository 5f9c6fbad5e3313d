package service

import (
	"time"

	"pdf-insights/internal/domain"
)

// AssembleDigest merges both ranking stages plus run metadata into the
// final structured result. Both stages already enforce their own size
// and uniqueness invariants; no further filtering happens here.
func AssembleDigest(task *domain.Task, inputDocuments []string, catalog []domain.PageSection, selected []int, snippets []domain.Snippet, now time.Time) *domain.Digest {
	sections := make([]domain.RankedSection, 0, len(selected))
	for rank, idx := range selected {
		section := catalog[idx]
		sections = append(sections, domain.RankedSection{
			Document:       section.Document,
			SectionTitle:   section.Heading,
			ImportanceRank: rank + 1,
			PageNumber:     section.PageNumber,
		})
	}

	if snippets == nil {
		snippets = []domain.Snippet{}
	}

	return &domain.Digest{
		Metadata: domain.DigestMetadata{
			InputDocuments:      inputDocuments,
			Persona:             task.Persona,
			JobToBeDone:         task.JobToBeDone,
			ProcessingTimestamp: now.Format(time.RFC3339),
		},
		ExtractedSections:  sections,
		SubsectionAnalysis: snippets,
	}
}
