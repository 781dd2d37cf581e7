package extraction

import (
	"regexp"
	"strings"

	"github.com/Caia-Tech/pairforge/pkg/pair"
)

// Minimum lengths gating the generic sub-strategies.
const (
	minParagraphLen    = 20
	minSectionBodyLen  = 30
	minChainPromptLen  = 20
	minChainAnswerLen  = 30
	minListItemLen     = 15
	minQuestionBodyLen = 20
	maxQuestionBodyLen = 500
)

var (
	numberedHeading = regexp.MustCompile(`^(\d+(?:\.\d+)*)[.)]?\s+(\S.*)$`)
	allCapsHeading  = regexp.MustCompile(`^[A-Z][A-Z\s]{2,}$`)
	listItemLine    = regexp.MustCompile(`^[•*-]\s+(.+)$`)
	numericOnly     = regexp.MustCompile(`^[\d\s.,%-]+$`)
	sentenceSplit   = regexp.MustCompile(`[^.!?]+[.!?]*`)

	implicitQuestion = regexp.MustCompile(`(?i)(?:^|[\n.!?]\s*)((?:What|How|Why|When|Where|Who|Which|Can|Could|Should|Would|Will|Do|Does|Did|Is|Are)\b[^?]*\?)`)
)

// ExtractGeneric is the fallback chain for unclassified prose. The
// sub-strategies are not mutually exclusive: each may add candidates
// independently, and the merged result is deduplicated by the caller. The
// sentence-chain pass only engages when the structural passes found little.
func ExtractGeneric(text string) []pair.Candidate {
	var candidates []pair.Candidate

	candidates = append(candidates, paragraphPairs(text)...)
	candidates = append(candidates, numberedSectionPairs(text)...)
	candidates = append(candidates, headingPairs(text)...)

	if len(candidates) < 3 {
		candidates = append(candidates, sentenceChainPairs(text)...)
	}

	candidates = append(candidates, listItemPairs(text)...)
	candidates = append(candidates, implicitQuestionPairs(text)...)

	return candidates
}

// paragraphPairs pairs each qualifying paragraph with its immediate
// successor. Both sides must exceed the minimum paragraph length.
func paragraphPairs(text string) []pair.Candidate {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if len(p) > minParagraphLen {
			paragraphs = append(paragraphs, p)
		}
	}

	var candidates []pair.Candidate
	for i := 0; i+1 < len(paragraphs); i++ {
		candidates = append(candidates, pair.Candidate{
			Prompt:     paragraphs[i],
			Completion: paragraphs[i+1],
			Tags:       []string{"generic"},
		})
	}
	return candidates
}

// numberedSectionPairs detects "N[.N...] heading" lines and treats the
// lines up to the next numbered heading as the section body.
func numberedSectionPairs(text string) []pair.Candidate {
	lines := strings.Split(text, "\n")

	var candidates []pair.Candidate
	for i := 0; i < len(lines); i++ {
		m := numberedHeading.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}

		var body []string
		j := i + 1
		for ; j < len(lines); j++ {
			if numberedHeading.MatchString(lines[j]) {
				break
			}
			body = append(body, lines[j])
		}

		completion := strings.TrimSpace(strings.Join(body, "\n"))
		if len(completion) > minSectionBodyLen {
			candidates = append(candidates, pair.Candidate{
				Prompt:     `Explain about "` + strings.TrimSpace(m[2]) + `"`,
				Completion: completion,
				Tags:       []string{"section"},
			})
		}
		i = j - 1
	}
	return candidates
}

// headingPairs detects ALL-CAPS or Title-Case standalone lines and captures
// the body up to the next such heading. Purely numeric bodies are skipped.
func headingPairs(text string) []pair.Candidate {
	lines := strings.Split(text, "\n")

	var candidates []pair.Candidate
	for i := 0; i < len(lines); i++ {
		heading := strings.TrimSpace(lines[i])
		if !isHeadingLine(heading) {
			continue
		}

		var body []string
		j := i + 1
		for ; j < len(lines); j++ {
			if isHeadingLine(strings.TrimSpace(lines[j])) {
				break
			}
			body = append(body, lines[j])
		}

		completion := strings.TrimSpace(strings.Join(body, "\n"))
		if len(completion) > minSectionBodyLen && !numericOnly.MatchString(completion) {
			candidates = append(candidates, pair.Candidate{
				Prompt:     "What about " + strings.ToLower(heading) + "?",
				Completion: completion,
				Tags:       []string{"section"},
			})
		}
		i = j - 1
	}
	return candidates
}

func isHeadingLine(line string) bool {
	if line == "" || strings.HasSuffix(line, ".") || strings.HasSuffix(line, ":") {
		return false
	}
	if allCapsHeading.MatchString(line) {
		return true
	}
	// Title-Case: a short standalone line where every word starts uppercase.
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 8 {
		return false
	}
	for _, w := range words {
		if w[0] < 'A' || w[0] > 'Z' {
			return false
		}
	}
	return true
}

// sentenceChainPairs groups sentences in overlapping windows: one prompt
// sentence plus the two that follow as the completion. Engaged only on
// texts with at least five sentences.
func sentenceChainPairs(text string) []pair.Candidate {
	var sentences []string
	for _, s := range sentenceSplit.FindAllString(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) < 5 {
		return nil
	}

	var candidates []pair.Candidate
	for i := 0; i+2 < len(sentences); i++ {
		prompt := sentences[i]
		completion := sentences[i+1] + " " + sentences[i+2]
		if len(prompt) < minChainPromptLen || len(completion) < minChainAnswerLen {
			continue
		}
		candidates = append(candidates, pair.Candidate{
			Prompt:     prompt,
			Completion: completion,
			Tags:       []string{"sentence"},
		})
	}
	return candidates
}

// listItemPairs pairs consecutive bullet items adjacently. Runs of items
// are bounded by non-list lines; short items are skipped.
func listItemPairs(text string) []pair.Candidate {
	var candidates []pair.Candidate
	var run []string

	flush := func() {
		for i := 0; i+1 < len(run); i++ {
			if len(run[i]) > minListItemLen && len(run[i+1]) > minListItemLen {
				candidates = append(candidates, pair.Candidate{
					Prompt:     run[i],
					Completion: run[i+1],
					Tags:       []string{"list"},
				})
			}
		}
		run = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if m := listItemLine.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			run = append(run, strings.TrimSpace(m[1]))
			continue
		}
		flush()
	}
	flush()

	return candidates
}

// implicitQuestionPairs detects interrogative-led sentences ending in "?"
// and takes the following text, up to the next paragraph break, as the
// answer. Answers are bounded to the 20–500 character range; overlong
// answers are cut back to the last sentence end that fits.
func implicitQuestionPairs(text string) []pair.Candidate {
	var candidates []pair.Candidate

	for _, loc := range implicitQuestion.FindAllStringSubmatchIndex(text, -1) {
		question := strings.TrimSpace(text[loc[2]:loc[3]])

		rest := text[loc[1]:]
		if cut := strings.Index(rest, "\n\n"); cut >= 0 {
			rest = rest[:cut]
		}
		answer := strings.TrimSpace(rest)
		if len(answer) < minQuestionBodyLen {
			continue
		}
		if len(answer) > maxQuestionBodyLen {
			answer = truncateAtSentence(answer, maxQuestionBodyLen)
		}

		candidates = append(candidates, pair.Candidate{
			Prompt:     question,
			Completion: answer,
			Tags:       []string{"question"},
		})
	}
	return candidates
}

func truncateAtSentence(s string, limit int) string {
	cut := s[:limit]
	if idx := strings.LastIndexAny(cut, ".!?"); idx > 0 {
		return strings.TrimSpace(cut[:idx+1])
	}
	return strings.TrimSpace(cut)
}
