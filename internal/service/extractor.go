package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pdf-insights/internal/domain"

	"github.com/gen2brain/go-fitz"
	pdflib "github.com/ledongthuc/pdf"
)

// Glyphs whose vertical positions differ by no more than this belong
// to the same visual line.
const lineTolerance = 3.0

// wordGapRatio is the fraction of the font size a horizontal gap must
// exceed to count as a word boundary between glyphs.
const wordGapRatio = 0.3

// PDFExtractor implements domain.DocumentSource. It reads each file
// twice on purpose: go-fitz produces clean page text and document
// metadata but exposes no font data, while ledongthuc/pdf exposes the
// per-glyph font name and size the heading detector needs.
type PDFExtractor struct {
	logger domain.Logger
}

func NewPDFExtractor(logger domain.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger}
}

// ListDocuments returns the PDF paths under dir, sorted by name so the
// document iteration order (and with it the catalog index space) is
// stable across runs.
func (e *PDFExtractor) ListDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read documents directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// ExtractFile parses one PDF into pages carrying raw text plus the
// line/span structure. A failure of the font-level parse degrades the
// document to text-only pages (no headings will be detected) rather
// than failing the extraction.
func (e *PDFExtractor) ExtractFile(path string) (*domain.PDFDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	result := &domain.PDFDocument{
		Name: filepath.Base(path),
		Metadata: domain.DocumentMetadata{
			PageCount: doc.NumPage(),
		},
	}
	meta := doc.Metadata()
	if title, ok := meta["title"]; ok && title != "" {
		result.Metadata.Title = title
	}
	if author, ok := meta["author"]; ok && author != "" {
		result.Metadata.Author = author
	}

	linesPerPage := e.extractAllLines(path, doc.NumPage())

	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		text, err := doc.Text(pageNum)
		if err != nil {
			e.logger.Warn("Failed to extract text from page", "file", result.Name, "page", pageNum+1, "error", err)
			text = ""
		}
		page := domain.Page{
			Number:  pageNum + 1,
			RawText: strings.TrimSpace(text),
		}
		if pageNum < len(linesPerPage) {
			page.Lines = linesPerPage[pageNum]
		}
		result.Pages = append(result.Pages, page)
	}

	return result, nil
}

// extractAllLines reads the span-level view of the PDF and returns the
// grouped lines for every page. Returns nil when the font-level parse
// fails; the caller proceeds without font data.
func (e *PDFExtractor) extractAllLines(path string, numPages int) [][]domain.Line {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		e.logger.Warn("Font-level parse unavailable, headings disabled for file", "file", filepath.Base(path), "error", err)
		return nil
	}
	defer f.Close()

	if reader.NumPage() < numPages {
		numPages = reader.NumPage()
	}
	linesPerPage := make([][]domain.Line, numPages)
	for i := 1; i <= numPages; i++ {
		linesPerPage[i-1] = e.extractLines(reader.Page(i))
	}
	return linesPerPage
}

// extractLines groups a page's positioned glyphs into lines and spans.
// Glyphs are sorted top-to-bottom then left-to-right, rows split on a
// Y-coordinate tolerance, and consecutive glyphs sharing a font make
// up one span. A horizontal gap wider than a fraction of the font size
// inserts a word break.
func (e *PDFExtractor) extractLines(page pdflib.Page) []domain.Line {
	if page.V.IsNull() {
		return nil
	}
	content := page.Content()
	glyphs := make([]pdflib.Text, 0, len(content.Text))
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		glyphs = append(glyphs, t)
	}
	if len(glyphs) == 0 {
		return nil
	}

	// PDF Y grows upward: larger Y is higher on the page.
	sort.SliceStable(glyphs, func(i, j int) bool {
		if glyphs[i].Y != glyphs[j].Y {
			return glyphs[i].Y > glyphs[j].Y
		}
		return glyphs[i].X < glyphs[j].X
	})

	var lines []domain.Line
	var row []pdflib.Text
	rowY := glyphs[0].Y
	flush := func() {
		if len(row) > 0 {
			lines = append(lines, buildLine(row))
			row = nil
		}
	}
	for _, g := range glyphs {
		if abs(g.Y-rowY) > lineTolerance {
			flush()
			rowY = g.Y
		}
		row = append(row, g)
	}
	flush()
	return lines
}

// buildLine merges one row of glyphs into font-homogeneous spans.
func buildLine(row []pdflib.Text) domain.Line {
	sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })

	var line domain.Line
	var span *domain.Span
	for i, g := range row {
		if span == nil || g.Font != span.FontName || g.FontSize != span.FontSize {
			line.Spans = append(line.Spans, domain.Span{FontName: g.Font, FontSize: g.FontSize})
			span = &line.Spans[len(line.Spans)-1]
		}
		if i > 0 {
			prev := row[i-1]
			if g.X-(prev.X+prev.W) > wordGapRatio*prev.FontSize {
				span.Text += " "
			}
		}
		span.Text += g.S
	}
	return line
}
