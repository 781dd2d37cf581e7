package analytics

import (
	"sort"
	"strings"

	"github.com/Caia-Tech/pairforge/pkg/pair"
)

// minTokenLen filters out short stopword-like tokens before vocabulary
// counting.
const minTokenLen = 3

// WordCount is one entry of the top-words table.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// DiversityMetrics describes vocabulary spread across the dataset.
type DiversityMetrics struct {
	VocabularySize        int            `json:"vocabulary_size"`
	UniquePromptWords     int            `json:"unique_prompt_words"`
	UniqueCompletionWords int            `json:"unique_completion_words"`
	LexicalDiversity      float64        `json:"lexical_diversity"`
	TagDistribution       map[string]int `json:"tag_distribution"`
	TopWords              []WordCount    `json:"top_words"`
}

// AnalyzeDiversity tokenizes prompts and completions on whitespace, keeps
// lower-cased tokens longer than three characters, and measures distinct
// vocabulary against total token volume.
func AnalyzeDiversity(ds pair.Dataset) DiversityMetrics {
	var promptTokens, completionTokens []string
	for _, p := range ds {
		promptTokens = append(promptTokens, tokenize(p.Prompt)...)
		completionTokens = append(completionTokens, tokenize(p.Completion)...)
	}

	uniquePrompt := distinct(promptTokens)
	uniqueCompletion := distinct(completionTokens)

	total := len(promptTokens) + len(completionTokens)
	diversity := 0.0
	if total > 0 {
		diversity = round2(float64(uniquePrompt+uniqueCompletion) / float64(total) * 100)
	}

	tagCounts := make(map[string]int)
	for _, p := range ds {
		for _, t := range p.Tags {
			tagCounts[t]++
		}
	}

	return DiversityMetrics{
		VocabularySize:        uniquePrompt + uniqueCompletion,
		UniquePromptWords:     uniquePrompt,
		UniqueCompletionWords: uniqueCompletion,
		LexicalDiversity:      diversity,
		TagDistribution:       tagCounts,
		TopWords:              TopWords(append(promptTokens, completionTokens...), 10),
	}
}

// TopWords returns the limit most frequent tokens, ties broken by first
// appearance in the token stream.
func TopWords(tokens []string, limit int) []WordCount {
	counts := make(map[string]int)
	var order []string
	for _, t := range tokens {
		if counts[t] == 0 {
			order = append(order, t)
		}
		counts[t]++
	}

	entries := make([]WordCount, 0, len(order))
	for _, w := range order {
		entries = append(entries, WordCount{Word: w, Count: counts[w]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func tokenize(text string) []string {
	var tokens []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if len(w) > minTokenLen {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

func distinct(tokens []string) int {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return len(set)
}
