package service

import (
	"sort"

	"pdf-insights/internal/domain"
)

// Spans within this distance of the page median count toward the
// dominant font vote.
const medianTolerance = 0.1

// FontStatisticsCollector derives a per-page typography baseline from
// span-level (size, font-name) observations.
type FontStatisticsCollector struct{}

func NewFontStatisticsCollector() *FontStatisticsCollector {
	return &FontStatisticsCollector{}
}

// Collect computes the baseline for one page. The median (not the
// mean) keeps the baseline robust against outlier spans such as large
// cover titles. Returns nil for a page with no spans.
func (c *FontStatisticsCollector) Collect(page *domain.Page) *domain.PageBaseline {
	var spans []domain.Span
	for _, line := range page.Lines {
		spans = append(spans, line.Spans...)
	}
	if len(spans) == 0 {
		return nil
	}

	median := medianFontSize(spans)

	// Most frequent font name among spans near the median size; fall
	// back to the global most frequent name when nothing is that close.
	dominant, ok := mostFrequentFont(spans, func(s domain.Span) bool {
		return abs(s.FontSize-median) < medianTolerance
	})
	if !ok {
		dominant, _ = mostFrequentFont(spans, func(domain.Span) bool { return true })
	}

	return &domain.PageBaseline{
		MedianFontSize:   median,
		DominantFontName: dominant,
	}
}

func medianFontSize(spans []domain.Span) float64 {
	sizes := make([]float64, len(spans))
	for i, s := range spans {
		sizes[i] = s.FontSize
	}
	sort.Float64s(sizes)
	mid := len(sizes) / 2
	if len(sizes)%2 == 0 {
		return (sizes[mid-1] + sizes[mid]) / 2
	}
	return sizes[mid]
}

// mostFrequentFont returns the most frequent font name among spans
// matching the filter. Frequency ties resolve to the name encountered
// first, which keeps the baseline deterministic.
func mostFrequentFont(spans []domain.Span, match func(domain.Span) bool) (string, bool) {
	counts := make(map[string]int)
	var order []string
	for _, s := range spans {
		if !match(s) {
			continue
		}
		if _, seen := counts[s.FontName]; !seen {
			order = append(order, s.FontName)
		}
		counts[s.FontName]++
	}
	if len(order) == 0 {
		return "", false
	}
	best := order[0]
	for _, name := range order[1:] {
		if counts[name] > counts[best] {
			best = name
		}
	}
	return best, true
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
