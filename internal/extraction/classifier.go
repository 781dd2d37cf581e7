package extraction

import (
	"regexp"
	"strings"

	"github.com/Caia-Tech/pairforge/pkg/pair"
)

// classifierRule pairs a predicate with the format it detects. Rules are
// evaluated in order and the first match wins, so precedence lives in the
// rule slice, not in control flow.
type classifierRule struct {
	Format pair.Format
	Match  func(text string) bool
}

var (
	cvMarkers          = regexp.MustCompile(`(?i)EDUCATION|WORK EXPERIENCE|RESEARCH EXPERIENCE|SKILLS`)
	faqMarker          = regexp.MustCompile(`(?is)Q:\s*.+?\s*A:`)
	conversationMarker = regexp.MustCompile(`(?i)(?:User|Human|Customer|Assistant|AI|Agent):`)
	emailMarker        = regexp.MustCompile(`(?i)From:|To:|Subject:`)
)

// classifierRules is the documented precedence order: a resume that also
// contains speaker-style lines still classifies as cv because cv markers
// are checked first.
var classifierRules = []classifierRule{
	{pair.FormatCV, cvMarkers.MatchString},
	{pair.FormatFAQ, faqMarker.MatchString},
	{pair.FormatConversation, conversationMarker.MatchString},
	{pair.FormatJSON, func(text string) bool {
		trimmed := strings.TrimSpace(text)
		return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
	}},
	{pair.FormatEmail, emailMarker.MatchString},
}

// Classify inspects normalized text and returns exactly one format label.
// Total and deterministic; unmatched text is generic.
func Classify(text string) pair.Format {
	for _, rule := range classifierRules {
		if rule.Match(text) {
			return rule.Format
		}
	}
	return pair.FormatGeneric
}
