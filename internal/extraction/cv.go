package extraction

import (
	"regexp"
	"strings"

	"github.com/Caia-Tech/pairforge/pkg/pair"
)

var (
	educationSection = regexp.MustCompile(`(?is)EDUCATION\s+(.*?)(?:WORK EXPERIENCE|RESEARCH|$)`)
	workSection      = regexp.MustCompile(`(?is)WORK EXPERIENCE\s+(.*?)(?:RESEARCH|EDUCATION|$)`)
	researchSection  = regexp.MustCompile(`(?is)RESEARCH\s+EXPERIENCE\s+(.*)$`)
	skillsSection    = regexp.MustCompile(`(?is)SKILLS\s+(.*?)(?:EDUCATION|WORK EXPERIENCE|RESEARCH|$)`)

	nameLine     = regexp.MustCompile(`^([A-Z][A-Z\s]+)\n`)
	emailPattern = regexp.MustCompile(`([a-zA-Z0-9._-]+@[a-zA-Z0-9._-]+\.[a-zA-Z0-9_-]+)`)
	phonePattern = regexp.MustCompile(`(\+?\d{10,15})`)
)

// ExtractCV captures the named sections of a resume and a contact block.
// Each section becomes a question-style pair tagged cv plus a subtag.
func ExtractCV(text string) []pair.Candidate {
	var candidates []pair.Candidate

	sections := []struct {
		pattern *regexp.Regexp
		prompt  string
		subtag  string
	}{
		{educationSection, "What is the candidate's educational background?", "education"},
		{workSection, "What is the candidate's work experience?", "experience"},
		{researchSection, "What research experience does the candidate have?", "research"},
		{skillsSection, "What skills does the candidate have?", "skills"},
	}

	for _, s := range sections {
		if m := s.pattern.FindStringSubmatch(text); m != nil {
			body := strings.TrimSpace(m[1])
			if body == "" {
				continue
			}
			candidates = append(candidates, pair.Candidate{
				Prompt:     s.prompt,
				Completion: body,
				Tags:       []string{"cv", s.subtag},
			})
		}
	}

	if contact := extractContactBlock(text); contact != "" {
		candidates = append(candidates, pair.Candidate{
			Prompt:     "What are the candidate's contact details?",
			Completion: contact,
			Tags:       []string{"cv", "contact"},
		})
	}

	return candidates
}

// extractContactBlock assembles a contact summary from a leading
// all-caps name line plus any email and phone found anywhere in the text.
// The name line is required; email and phone are optional.
func extractContactBlock(text string) string {
	name := nameLine.FindStringSubmatch(text)
	if name == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("Name: " + strings.TrimSpace(name[1]))
	if m := emailPattern.FindStringSubmatch(text); m != nil {
		b.WriteString("\nEmail: " + m[1])
	}
	if m := phonePattern.FindStringSubmatch(text); m != nil {
		b.WriteString("\nPhone: " + m[1])
	}
	return b.String()
}
