package extraction

import (
	"regexp"
	"strings"

	"github.com/Caia-Tech/pairforge/pkg/pair"
)

var subjectLine = regexp.MustCompile(`(?i)Subject:\s*(.+)`)

// ExtractEmail produces at most one pair from an email: the Subject line as
// prompt context and the body after the first blank line as completion.
// Both must be present.
func ExtractEmail(text string) []pair.Candidate {
	subject := subjectLine.FindStringSubmatch(text)
	if subject == nil {
		return nil
	}

	idx := strings.Index(text, "\n\n")
	if idx < 0 {
		return nil
	}
	body := strings.TrimSpace(text[idx+2:])
	if body == "" {
		return nil
	}

	return []pair.Candidate{{
		Prompt:     "Email about: " + strings.TrimSpace(subject[1]),
		Completion: body,
		Tags:       []string{"email"},
	}}
}
