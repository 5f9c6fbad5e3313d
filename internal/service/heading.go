package service

import (
	"strings"
	"unicode"

	"pdf-insights/internal/domain"
)

const (
	// Headings are assumed short; longer lines are body text.
	maxHeadingWords = 15
	// A heading's leading span must be at least this much larger than
	// the page median to count as size emphasis.
	headingSizeRatio = 1.2
)

// HeadingDecision is the outcome of classifying one line. Reason is
// set on rejection so the rule chain stays auditable.
type HeadingDecision struct {
	Heading bool
	Reason  string
}

// Rejection reason codes, one per rule.
const (
	ReasonEmptyLine         = "empty_line"
	ReasonTooManyWords      = "too_many_words"
	ReasonSentenceEnding    = "sentence_ending"
	ReasonLowercaseMajority = "lowercase_majority"
	ReasonNoFontEmphasis    = "no_font_emphasis"
)

// HeadingClassifier decides whether a text line is a heading using
// structural and typographic signals relative to the page baseline.
// The rules are ordered and short-circuit: structure first, then case,
// then font emphasis.
type HeadingClassifier struct{}

func NewHeadingClassifier() *HeadingClassifier {
	return &HeadingClassifier{}
}

// Classify evaluates the line's leading span and full text against the
// page baseline. The baseline must be non-nil; pages without spans
// never reach the classifier.
func (c *HeadingClassifier) Classify(span domain.Span, lineText string, baseline domain.PageBaseline) HeadingDecision {
	words := strings.Fields(lineText)

	// Structural rules: must be short and non-sentential.
	if lineText == "" {
		return HeadingDecision{Reason: ReasonEmptyLine}
	}
	if len(words) > maxHeadingWords {
		return HeadingDecision{Reason: ReasonTooManyWords}
	}
	if strings.HasSuffix(lineText, ".") || strings.HasSuffix(lineText, "?") || strings.HasSuffix(lineText, "!") {
		return HeadingDecision{Reason: ReasonSentenceEnding}
	}

	// Case rule: a strict majority of lowercase words reads as a
	// sentence, not a title. Short lines bypass this; the case signal
	// is unreliable on one or two words.
	if len(words) > 2 {
		lower := 0
		for _, w := range words {
			if isLowercaseWord(w) {
				lower++
			}
		}
		if 2*lower > len(words) {
			return HeadingDecision{Reason: ReasonLowercaseMajority}
		}
	}

	// Font rule: local emphasis relative to the page baseline, either
	// significantly larger or bold where the page's dominant font is not.
	isLarger := span.FontSize > baseline.MedianFontSize*headingSizeRatio
	isBold := strings.Contains(strings.ToLower(span.FontName), "bold") &&
		!strings.Contains(strings.ToLower(baseline.DominantFontName), "bold")
	if isLarger || isBold {
		return HeadingDecision{Heading: true}
	}
	return HeadingDecision{Reason: ReasonNoFontEmphasis}
}

// isLowercaseWord reports whether the word has at least one cased rune
// and every cased rune is lowercase.
func isLowercaseWord(w string) bool {
	cased := false
	for _, r := range w {
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsLower(r) {
			cased = true
		}
	}
	return cased
}
