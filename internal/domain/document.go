package domain

import "strings"

// Span is a run of text sharing one font, as reported by the PDF layer.
type Span struct {
	Text     string  `json:"text"`
	FontSize float64 `json:"font_size"`
	FontName string  `json:"font_name"`
}

// Line groups the ordered spans of a single visual text line.
type Line struct {
	Spans []Span `json:"spans"`
}

// Text returns the concatenated span text of the line, trimmed.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return strings.TrimSpace(b.String())
}

// Page holds one page's raw text plus its line/span structure.
type Page struct {
	Number  int    `json:"number"` // 1-indexed
	RawText string `json:"raw_text"`
	Lines   []Line `json:"lines"`
}

// PageBaseline is the representative "normal" typography of a page,
// used to detect local emphasis. It is computed once per page and
// never mutated. A page with no spans has no baseline (nil).
type PageBaseline struct {
	MedianFontSize   float64 `json:"median_font_size"`
	DominantFontName string  `json:"dominant_font_name"`
}

// DocumentMetadata carries document-level information from the PDF.
type DocumentMetadata struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	PageCount int    `json:"page_count"`
}

// PDFDocument is one parsed input document.
type PDFDocument struct {
	Name     string           `json:"name"` // file name, used as document id
	Metadata DocumentMetadata `json:"metadata"`
	Pages    []Page           `json:"pages"`
}

// PageSection is one page's (heading, body) pair, the unit of
// heading-level ranking. Heading is the first line on the page that
// classified as a heading; it may be empty.
type PageSection struct {
	Document   string `json:"document"`
	PageNumber int    `json:"page_number"`
	Heading    string `json:"heading"`
	Details    string `json:"details"`
}
