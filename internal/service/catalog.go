package service

import "pdf-insights/internal/domain"

// BuildCatalog flattens structured pages across all documents into the
// ordered section list both ranking stages index into. Only pages with
// a non-empty heading and non-empty body qualify. The order (document
// iteration order, then ascending page number) is the stable index
// space that stage 2's exclusion-by-index depends on, so callers must
// not rebuild the catalog between stages.
func BuildCatalog(sectionsByDocument [][]domain.PageSection) []domain.PageSection {
	var catalog []domain.PageSection
	for _, sections := range sectionsByDocument {
		for _, section := range sections {
			if section.Heading != "" && section.Details != "" {
				catalog = append(catalog, section)
			}
		}
	}
	return catalog
}
