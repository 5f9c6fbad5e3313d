package domain

import "testing"

func TestLineText(t *testing.T) {
	line := Line{Spans: []Span{
		{Text: "South of ", FontSize: 10, FontName: "Helvetica"},
		{Text: "France", FontSize: 10, FontName: "Helvetica-Bold"},
	}}
	if got := line.Text(); got != "South of France" {
		t.Fatalf("expected %q, got %q", "South of France", got)
	}
}

func TestLineText_TrimsSurroundingWhitespace(t *testing.T) {
	line := Line{Spans: []Span{{Text: "  Heading  ", FontSize: 14, FontName: "Helvetica"}}}
	if got := line.Text(); got != "Heading" {
		t.Fatalf("expected %q, got %q", "Heading", got)
	}
}

func TestLineText_Empty(t *testing.T) {
	if got := (Line{}).Text(); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestTaskValidate(t *testing.T) {
	task := &Task{Persona: "Travel Planner", JobToBeDone: "Plan a trip"}
	if err := task.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := &Task{JobToBeDone: "Plan a trip"}
	if err := missing.Validate(); err == nil {
		t.Fatal("expected an error for a missing persona")
	}

	missing = &Task{Persona: "Travel Planner"}
	if err := missing.Validate(); err == nil {
		t.Fatal("expected an error for a missing job")
	}
}
