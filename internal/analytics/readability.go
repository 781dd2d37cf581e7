package analytics

import (
	"regexp"
	"strings"

	"github.com/Caia-Tech/pairforge/pkg/pair"
)

// avgSyllablesPerWord is a fixed estimate. Real syllable counting needs a
// pronunciation dictionary; 1.5 tracks typical English prose closely
// enough for a comparative score.
const avgSyllablesPerWord = 1.5

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// ReadabilityMetrics scores completions with a Flesch Reading Ease
// variant that fixes syllables-per-word at an estimate.
type ReadabilityMetrics struct {
	AvgSentenceLength int    `json:"avg_sentence_length"`
	FleschScore       int    `json:"flesch_score"`
	ReadabilityLevel  string `json:"readability_level"`
	Complexity        string `json:"complexity"`
}

// AnalyzeReadability averages per-pair sentence length over completions
// and maps the Flesch score onto standard level bands. A completion with
// no terminal punctuation still counts as one sentence; only an empty
// completion contributes zero to the average.
func AnalyzeReadability(ds pair.Dataset) ReadabilityMetrics {
	sum := 0.0
	for _, p := range ds {
		sentences := 0
		for _, s := range sentenceBoundary.Split(p.Completion, -1) {
			if strings.TrimSpace(s) != "" {
				sentences++
			}
		}
		if sentences > 0 {
			words := len(strings.Split(p.Completion, " "))
			sum += float64(words) / float64(sentences)
		}
	}
	avgSentenceLength := sum / float64(len(ds))

	flesch := 206.835 - 1.015*avgSentenceLength - 84.6*avgSyllablesPerWord

	return ReadabilityMetrics{
		AvgSentenceLength: roundInt(avgSentenceLength),
		FleschScore:       roundInt(flesch),
		ReadabilityLevel:  readabilityLevel(flesch),
		Complexity:        complexity(avgSentenceLength),
	}
}

func readabilityLevel(score float64) string {
	switch {
	case score >= 90:
		return "Very Easy"
	case score >= 80:
		return "Easy"
	case score >= 70:
		return "Fairly Easy"
	case score >= 60:
		return "Standard"
	case score >= 50:
		return "Fairly Difficult"
	default:
		return "Difficult"
	}
}

func complexity(avgSentenceLength float64) string {
	switch {
	case avgSentenceLength > 20:
		return "Complex"
	case avgSentenceLength > 15:
		return "Moderate"
	default:
		return "Simple"
	}
}
