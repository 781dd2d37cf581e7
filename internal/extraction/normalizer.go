package extraction

import (
	"regexp"
	"strings"
)

// NormalizationRule is a single text normalization step. Rules are pure
// string transforms; none may reorder lines.
type NormalizationRule interface {
	Name() string
	Apply(text string) string
}

// Normalizer cleans raw input text before any pattern matching runs.
// The rule order is fixed and significant.
type Normalizer struct {
	rules []NormalizationRule
}

// NewNormalizer creates a normalizer with the default rule chain.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		rules: []NormalizationRule{
			&HorizontalWhitespaceRule{},
			&NewlineCollapseRule{},
			&PageNumberLineRule{},
			&RepeatedLineRule{},
			&HyphenMergeRule{},
			&BulletArtifactRule{},
			&LineTrimRule{},
		},
	}
}

// Normalize runs the full rule chain and trims the result. It is
// deterministic, total, and idempotent: empty string in, empty string out.
// Blank-line runs are collapsed a second time at the end because rules that
// blank out artifact lines can reintroduce them.
func (n *Normalizer) Normalize(text string) string {
	for _, rule := range n.rules {
		text = rule.Apply(text)
	}
	text = newlineRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Rules returns the names of the configured rules in application order.
func (n *Normalizer) Rules() []string {
	names := make([]string, 0, len(n.rules))
	for _, rule := range n.rules {
		names = append(names, rule.Name())
	}
	return names
}

// Normalize cleans text with the default rule chain.
func Normalize(text string) string {
	return NewNormalizer().Normalize(text)
}

// HorizontalWhitespaceRule collapses runs of spaces and tabs to one space.
type HorizontalWhitespaceRule struct{}

var horizontalWS = regexp.MustCompile(`[ \t]+`)

func (r *HorizontalWhitespaceRule) Name() string { return "horizontal_whitespace" }

func (r *HorizontalWhitespaceRule) Apply(text string) string {
	return horizontalWS.ReplaceAllString(text, " ")
}

// NewlineCollapseRule caps consecutive blank lines: three or more newlines,
// blank-line whitespace included, become exactly two.
type NewlineCollapseRule struct{}

var newlineRuns = regexp.MustCompile(`(?:\n[ \t]*){3,}`)

func (r *NewlineCollapseRule) Name() string { return "newline_collapse" }

func (r *NewlineCollapseRule) Apply(text string) string {
	return newlineRuns.ReplaceAllString(text, "\n\n")
}

// PageNumberLineRule drops lines that contain nothing but a short number,
// the usual residue of paginated source documents.
type PageNumberLineRule struct{}

var pageNumberLine = regexp.MustCompile(`^\s*\d{1,4}\s*$`)

func (r *PageNumberLineRule) Name() string { return "page_number_lines" }

func (r *PageNumberLineRule) Apply(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if pageNumberLine.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// RepeatedLineRule removes a line when the following line is an exact
// trimmed repeat, collapsing header/footer artifacts from page joins.
type RepeatedLineRule struct{}

func (r *RepeatedLineRule) Name() string { return "repeated_lines" }

func (r *RepeatedLineRule) Apply(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= 1 {
		return text
	}
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && i+1 < len(lines) && trimmed == strings.TrimSpace(lines[i+1]) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// HyphenMergeRule joins words split across a line break by hyphenation,
// tolerating stray whitespace around the break. It runs after the artifact
// line rules so a page number between the two halves does not block the
// merge.
type HyphenMergeRule struct{}

var hyphenBreak = regexp.MustCompile(`([A-Za-z])-[ \t]*\n[ \t]*([A-Za-z])`)

func (r *HyphenMergeRule) Name() string { return "hyphen_merge" }

func (r *HyphenMergeRule) Apply(text string) string {
	return hyphenBreak.ReplaceAllString(text, "$1$2")
}

// BulletArtifactRule strips leading non-word junk characters from each line
// while preserving recognized bullet glyphs (•, -, *) and digits, which the
// extraction strategies rely on.
type BulletArtifactRule struct{}

var bulletArtifact = regexp.MustCompile(`^[^\w\s•*-]+[ \t]*`)

func (r *BulletArtifactRule) Name() string { return "bullet_artifacts" }

func (r *BulletArtifactRule) Apply(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = bulletArtifact.ReplaceAllString(line, "")
	}
	return strings.Join(lines, "\n")
}

// LineTrimRule trims surrounding whitespace from every line.
type LineTrimRule struct{}

func (r *LineTrimRule) Name() string { return "line_trim" }

func (r *LineTrimRule) Apply(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
