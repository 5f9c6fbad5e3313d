package service

import (
	"testing"

	"pdf-insights/internal/domain"
)

func newTestStructurer() *PageStructurer {
	return NewPageStructurer(&MockServiceLogger{})
}

func TestStructure_FirstHeadingWins(t *testing.T) {
	s := newTestStructurer()
	page := domain.Page{
		Number:  3,
		RawText: "Running Header\nSection Title\nBody text here",
		Lines: []domain.Line{
			{Spans: []domain.Span{{Text: "Running Header", FontSize: 20, FontName: "Helvetica"}}},
			{Spans: []domain.Span{{Text: "Section Title", FontSize: 22, FontName: "Helvetica"}}},
			{Spans: []domain.Span{{Text: "Body text here", FontSize: 10, FontName: "Helvetica"}}},
			{Spans: []domain.Span{{Text: "Body text here", FontSize: 10, FontName: "Helvetica"}}},
			{Spans: []domain.Span{{Text: "Body text here", FontSize: 10, FontName: "Helvetica"}}},
		},
	}

	section := s.Structure("guide.pdf", &page)
	if section.Heading != "Running Header" {
		t.Fatalf("expected first heading-like line to win, got %q", section.Heading)
	}
	if section.Document != "guide.pdf" || section.PageNumber != 3 {
		t.Fatalf("unexpected section identity: %+v", section)
	}
}

func TestStructure_CleansBodyText(t *testing.T) {
	s := newTestStructurer()
	page := domain.Page{
		Number:  1,
		RawText: "Staﬀ  picks:\n• First item\n• Second item  –  dash",
	}

	section := s.Structure("doc.pdf", &page)
	if section.Heading != "" {
		t.Fatalf("page without spans must have no heading, got %q", section.Heading)
	}
	want := "Staff picks: First item Second item dash"
	if section.Details != want {
		t.Fatalf("expected cleaned body %q, got %q", want, section.Details)
	}
}

func TestStructure_StripsHeadingPrefixFromBody(t *testing.T) {
	s := newTestStructurer()
	page := headingPage(1, "Introduction",
		domain.Span{Text: "Introduction", FontSize: 20, FontName: "Helvetica"},
		"This chapter covers the basics",
	)

	section := s.Structure("doc.pdf", &page)
	if section.Heading != "Introduction" {
		t.Fatalf("expected heading Introduction, got %q", section.Heading)
	}
	if section.Details != "This chapter covers the basics" {
		t.Fatalf("heading not stripped from body: %q", section.Details)
	}
}

func TestStructure_NoSpansKeepsRawText(t *testing.T) {
	s := newTestStructurer()
	page := domain.Page{Number: 2, RawText: "Only raw text survived extraction"}

	section := s.Structure("doc.pdf", &page)
	if section.Heading != "" {
		t.Fatalf("expected empty heading, got %q", section.Heading)
	}
	if section.Details != "Only raw text survived extraction" {
		t.Fatalf("expected raw text preserved, got %q", section.Details)
	}
}

func TestStructure_EmptyPage(t *testing.T) {
	s := newTestStructurer()
	section := s.Structure("doc.pdf", &domain.Page{Number: 4})
	if section.Heading != "" || section.Details != "" {
		t.Fatalf("expected empty section, got %+v", section)
	}
}

func TestBuildCatalog_FiltersAndPreservesOrder(t *testing.T) {
	docA := []domain.PageSection{
		{Document: "a.pdf", PageNumber: 1, Heading: "One", Details: "body"},
		{Document: "a.pdf", PageNumber: 2, Heading: "", Details: "no heading"},
		{Document: "a.pdf", PageNumber: 3, Heading: "Three", Details: ""},
		{Document: "a.pdf", PageNumber: 4, Heading: "Four", Details: "body"},
	}
	docB := []domain.PageSection{
		{Document: "b.pdf", PageNumber: 1, Heading: "BOne", Details: "body"},
	}

	catalog := BuildCatalog([][]domain.PageSection{docA, docB})
	if len(catalog) != 3 {
		t.Fatalf("expected 3 catalog entries, got %d", len(catalog))
	}
	wantOrder := []string{"One", "Four", "BOne"}
	for i, heading := range wantOrder {
		if catalog[i].Heading != heading {
			t.Fatalf("position %d: expected %s, got %s", i, heading, catalog[i].Heading)
		}
	}
}
