// Package analytics computes quality, diversity, readability, and balance
// metrics over pair datasets to guide curation. Every function is a pure
// transform of a dataset snapshot; reports are recomputed fresh on each
// request and never cached.
package analytics

import (
	"math"

	"github.com/Caia-Tech/pairforge/pkg/pair"
	"github.com/rs/zerolog/log"
)

// Report is a read-only analysis snapshot of a dataset.
type Report struct {
	Overview        Overview            `json:"overview"`
	Quality         QualityAssessment   `json:"quality"`
	Diversity       DiversityMetrics    `json:"diversity"`
	Distribution    DistributionMetrics `json:"distribution"`
	Readability     ReadabilityMetrics  `json:"readability"`
	Balance         BalanceMetrics      `json:"balance"`
	Trends          []TrendBucket       `json:"trends"`
	Insights        []Insight           `json:"insights"`
	Recommendations []Recommendation    `json:"recommendations"`
}

// Analyze produces a full report for the dataset. Returns nil for an empty
// dataset: the caller surfaces "no report available", never an error.
func Analyze(ds pair.Dataset) *Report {
	if len(ds) == 0 {
		return nil
	}

	overview := ComputeOverview(ds)
	quality := AssessQuality(ds)
	diversity := AnalyzeDiversity(ds)

	report := &Report{
		Overview:        overview,
		Quality:         quality,
		Diversity:       diversity,
		Distribution:    AnalyzeDistribution(ds),
		Readability:     AnalyzeReadability(ds),
		Balance:         AnalyzeBalance(ds),
		Trends:          AnalyzeTrends(ds),
		Insights:        GenerateInsights(ds, quality, diversity, overview),
		Recommendations: GenerateRecommendations(ds, quality, overview),
	}

	log.Debug().
		Int("pairs", overview.TotalPairs).
		Float64("overall_score", quality.OverallScore).
		Str("grade", quality.Grade.Letter).
		Int("insights", len(report.Insights)).
		Msg("Dataset analysis completed")

	return report
}

// Overview holds the basic counts shown at the top of a report.
type Overview struct {
	TotalPairs          int `json:"total_pairs"`
	TotalWords          int `json:"total_words"`
	AvgPromptLength     int `json:"avg_prompt_length"`
	AvgCompletionLength int `json:"avg_completion_length"`
	TotalCharacters     int `json:"total_characters"`
	EstimatedTokens     int `json:"estimated_tokens"`
	UniqueTags          int `json:"unique_tags"`
}

// ComputeOverview totals prompt and completion characters. Words and tokens
// are character-count estimates (5 and 4 chars per unit), not tokenizer
// output.
func ComputeOverview(ds pair.Dataset) Overview {
	promptChars, completionChars := 0, 0
	tags := make(map[string]bool)
	for _, p := range ds {
		promptChars += len(p.Prompt)
		completionChars += len(p.Completion)
		for _, t := range p.Tags {
			tags[t] = true
		}
	}

	total := promptChars + completionChars
	n := len(ds)
	return Overview{
		TotalPairs:          n,
		TotalWords:          roundInt(float64(total) / 5),
		AvgPromptLength:     roundInt(float64(promptChars) / float64(n)),
		AvgCompletionLength: roundInt(float64(completionChars) / float64(n)),
		TotalCharacters:     total,
		EstimatedTokens:     roundInt(float64(total) / 4),
		UniqueTags:          len(tags),
	}
}

func roundInt(f float64) int {
	return int(math.Round(f))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
