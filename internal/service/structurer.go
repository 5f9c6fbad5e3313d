package service

import (
	"regexp"
	"strings"
	"unicode"

	"pdf-insights/internal/domain"
)

var (
	bulletChars = regexp.MustCompile(`[\*•–-]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// PageStructurer assembles one Section per page: a cleaned body text
// plus at most one detected heading.
type PageStructurer struct {
	fonts      *FontStatisticsCollector
	classifier *HeadingClassifier
	logger     domain.Logger
}

func NewPageStructurer(logger domain.Logger) *PageStructurer {
	return &PageStructurer{
		fonts:      NewFontStatisticsCollector(),
		classifier: NewHeadingClassifier(),
		logger:     logger,
	}
}

// Structure builds the section for one page of one document. The first
// line classified as a heading wins; later heading-like lines on the
// page are ignored. A page with no spans has no baseline and therefore
// no heading, but its raw text still yields cleaned body text.
func (s *PageStructurer) Structure(document string, page *domain.Page) domain.PageSection {
	heading := ""
	if baseline := s.fonts.Collect(page); baseline != nil {
		for _, line := range page.Lines {
			lineText := line.Text()
			if lineText == "" || len(line.Spans) == 0 {
				continue
			}
			if s.classifier.Classify(line.Spans[0], lineText, *baseline).Heading {
				heading = lineText
				break
			}
		}
	}

	details := cleanBodyText(page.RawText)
	// Avoid repeating the heading at the start of the body.
	if heading != "" && strings.HasPrefix(details, heading) {
		details = strings.TrimLeftFunc(strings.TrimPrefix(details, heading), unicode.IsSpace)
	}

	return domain.PageSection{
		Document:   document,
		PageNumber: page.Number,
		Heading:    heading,
		Details:    details,
	}
}

// cleanBodyText normalizes the ff ligature, strips bullet and dash
// characters, and collapses whitespace runs to single spaces.
func cleanBodyText(raw string) string {
	text := strings.ReplaceAll(raw, "ﬀ", "ff")
	text = bulletChars.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
