package service

import (
	"testing"

	"pdf-insights/internal/domain"
)

func pageWithSpans(spans ...domain.Span) *domain.Page {
	page := &domain.Page{Number: 1}
	for _, s := range spans {
		page.Lines = append(page.Lines, domain.Line{Spans: []domain.Span{s}})
	}
	return page
}

func TestCollect_NoSpans(t *testing.T) {
	collector := NewFontStatisticsCollector()

	baseline := collector.Collect(&domain.Page{Number: 1, RawText: "scanned page"})
	if baseline != nil {
		t.Fatalf("expected nil baseline for page without spans, got %+v", baseline)
	}
}

func TestCollect_MedianOddCount(t *testing.T) {
	collector := NewFontStatisticsCollector()
	baseline := collector.Collect(pageWithSpans(
		domain.Span{Text: "a", FontSize: 10, FontName: "Helvetica"},
		domain.Span{Text: "b", FontSize: 12, FontName: "Helvetica"},
		domain.Span{Text: "c", FontSize: 48, FontName: "Helvetica-Bold"},
	))

	if baseline == nil {
		t.Fatal("expected baseline")
	}
	if baseline.MedianFontSize != 12 {
		t.Fatalf("expected median 12, got %v", baseline.MedianFontSize)
	}
}

func TestCollect_MedianEvenCount(t *testing.T) {
	collector := NewFontStatisticsCollector()
	baseline := collector.Collect(pageWithSpans(
		domain.Span{Text: "a", FontSize: 10, FontName: "Helvetica"},
		domain.Span{Text: "b", FontSize: 10, FontName: "Helvetica"},
		domain.Span{Text: "c", FontSize: 12, FontName: "Helvetica"},
		domain.Span{Text: "d", FontSize: 14, FontName: "Helvetica"},
	))

	if baseline.MedianFontSize != 11 {
		t.Fatalf("expected median 11, got %v", baseline.MedianFontSize)
	}
}

func TestCollect_MedianRobustToOutliers(t *testing.T) {
	collector := NewFontStatisticsCollector()
	// A large cover title must not drag the baseline up.
	baseline := collector.Collect(pageWithSpans(
		domain.Span{Text: "COVER", FontSize: 72, FontName: "Helvetica-Bold"},
		domain.Span{Text: "a", FontSize: 10, FontName: "Times"},
		domain.Span{Text: "b", FontSize: 10, FontName: "Times"},
		domain.Span{Text: "c", FontSize: 10, FontName: "Times"},
		domain.Span{Text: "d", FontSize: 10, FontName: "Times"},
	))

	if baseline.MedianFontSize != 10 {
		t.Fatalf("expected median 10, got %v", baseline.MedianFontSize)
	}
	if baseline.DominantFontName != "Times" {
		t.Fatalf("expected dominant Times, got %s", baseline.DominantFontName)
	}
}

func TestCollect_DominantNearMedianOnly(t *testing.T) {
	collector := NewFontStatisticsCollector()
	// Courier outnumbers Times globally, but only Times sits within
	// the tolerance of the median.
	baseline := collector.Collect(pageWithSpans(
		domain.Span{Text: "a", FontSize: 10, FontName: "Times"},
		domain.Span{Text: "b", FontSize: 10, FontName: "Times"},
		domain.Span{Text: "c", FontSize: 10, FontName: "Times"},
		domain.Span{Text: "d", FontSize: 16, FontName: "Courier"},
		domain.Span{Text: "e", FontSize: 16, FontName: "Courier"},
	))

	if baseline.MedianFontSize != 10 {
		t.Fatalf("expected median 10, got %v", baseline.MedianFontSize)
	}
	if baseline.DominantFontName != "Times" {
		t.Fatalf("expected dominant Times, got %s", baseline.DominantFontName)
	}
}

func TestCollect_DominantFallbackWhenNothingAtMedian(t *testing.T) {
	collector := NewFontStatisticsCollector()
	// Median of {10, 20} is 15; no span is within 0.1 of it, so the
	// dominant font falls back to the global most frequent name.
	baseline := collector.Collect(pageWithSpans(
		domain.Span{Text: "a", FontSize: 10, FontName: "Times"},
		domain.Span{Text: "b", FontSize: 20, FontName: "Courier"},
		domain.Span{Text: "c", FontSize: 20, FontName: "Courier"},
		domain.Span{Text: "d", FontSize: 10, FontName: "Times"},
		domain.Span{Text: "e", FontSize: 20, FontName: "Courier"},
		domain.Span{Text: "f", FontSize: 10, FontName: "Times"},
	))

	if baseline.MedianFontSize != 15 {
		t.Fatalf("expected median 15, got %v", baseline.MedianFontSize)
	}
	if baseline.DominantFontName != "Times" && baseline.DominantFontName != "Courier" {
		t.Fatalf("unexpected dominant font %s", baseline.DominantFontName)
	}
	// Both names appear three times; the tie resolves to the name
	// encountered first.
	if baseline.DominantFontName != "Times" {
		t.Fatalf("expected first-encountered Times on tie, got %s", baseline.DominantFontName)
	}
}

func TestCollect_FrequencyTieFirstEncountered(t *testing.T) {
	collector := NewFontStatisticsCollector()
	baseline := collector.Collect(pageWithSpans(
		domain.Span{Text: "a", FontSize: 10, FontName: "Georgia"},
		domain.Span{Text: "b", FontSize: 10, FontName: "Verdana"},
	))

	if baseline.DominantFontName != "Georgia" {
		t.Fatalf("expected Georgia on tie, got %s", baseline.DominantFontName)
	}
}
