package extraction

import (
	"regexp"
	"strings"

	"github.com/Caia-Tech/pairforge/pkg/pair"
)

var (
	questionMarker = regexp.MustCompile(`Q:`)
	answerMarker   = regexp.MustCompile(`A:`)

	// Speaker markers are case-sensitive; only the classifier matches them
	// case-insensitively.
	speakerPrompt     = regexp.MustCompile(`(?:User|Human|Customer):`)
	speakerCompletion = regexp.MustCompile(`(?:Assistant|AI|Agent):`)
)

// ExtractFAQ captures repeated Q:/A: pairs. Each answer runs until the next
// Q: marker or the end of the text.
func ExtractFAQ(text string) []pair.Candidate {
	return extractTurns(text, questionMarker, answerMarker, []string{"faq"})
}

// ExtractConversation captures alternating speaker turns: a user-side turn
// followed by an assistant-side turn, the reply running until the next
// user-side turn or the end of the text.
func ExtractConversation(text string) []pair.Candidate {
	return extractTurns(text, speakerPrompt, speakerCompletion, []string{"conversation"})
}

// extractTurns splits text on the prompt-side marker and, within each
// segment, on the first completion-side marker. Segments without both parts
// are skipped.
func extractTurns(text string, promptMarker, completionMarker *regexp.Regexp, tags []string) []pair.Candidate {
	var candidates []pair.Candidate

	for _, segment := range promptMarker.Split(text, -1) {
		loc := completionMarker.FindStringIndex(segment)
		if loc == nil {
			continue
		}
		prompt := strings.TrimSpace(segment[:loc[0]])
		completion := strings.TrimSpace(segment[loc[1]:])
		if prompt == "" || completion == "" {
			continue
		}
		candidates = append(candidates, pair.Candidate{
			Prompt:     prompt,
			Completion: completion,
			Tags:       tags,
		})
	}

	return candidates
}
