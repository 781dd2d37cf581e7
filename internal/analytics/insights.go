package analytics

import (
	"fmt"

	"github.com/Caia-Tech/pairforge/pkg/pair"
)

// Thresholds that trigger insights and recommendations.
const (
	minComfortablePairs    = 50
	targetPairs            = 100
	uniquenessAlertBelow   = 95
	diversityAlertBelow    = 30
	shortCompletionAvg     = 50
	qualityAlertBelow      = 70
	minRecommendedTagKinds = 3
)

// Insight is an observation about the dataset, rendered with an icon in
// report surfaces.
type Insight struct {
	Type    string `json:"type"`
	Icon    string `json:"icon"`
	Message string `json:"message"`
}

// Recommendation is a prioritized action the curator should take.
type Recommendation struct {
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

// GenerateInsights derives observations from already-computed metrics.
// Never returns an empty slice; a healthy dataset gets a success note.
func GenerateInsights(ds pair.Dataset, quality QualityAssessment, diversity DiversityMetrics, overview Overview) []Insight {
	var insights []Insight

	if len(ds) < minComfortablePairs {
		insights = append(insights, Insight{
			Type:    "warning",
			Icon:    "fa-exclamation-triangle",
			Message: fmt.Sprintf("Your dataset has only %d pairs. Consider adding at least 50-100 pairs for better model training.", len(ds)),
		})
	}

	if quality.Scores.Uniqueness < uniquenessAlertBelow {
		insights = append(insights, Insight{
			Type:    "info",
			Icon:    "fa-clone",
			Message: "Found duplicate pairs. Run the cleaning tool to remove them.",
		})
	}

	if diversity.LexicalDiversity < diversityAlertBelow {
		insights = append(insights, Insight{
			Type:    "warning",
			Icon:    "fa-book",
			Message: fmt.Sprintf("Low vocabulary diversity (%.2f%%). Try adding more varied examples.", diversity.LexicalDiversity),
		})
	}

	if overview.AvgCompletionLength < shortCompletionAvg {
		insights = append(insights, Insight{
			Type:    "warning",
			Icon:    "fa-text-height",
			Message: "Average completion length is quite short. Consider adding more detailed responses.",
		})
	}

	if len(insights) == 0 {
		insights = append(insights, Insight{
			Type:    "success",
			Icon:    "fa-check-circle",
			Message: "Your dataset looks great! It's well-balanced and ready for training.",
		})
	}

	return insights
}

// GenerateRecommendations turns metric shortfalls into prioritized actions.
// May be empty when the dataset needs nothing.
func GenerateRecommendations(ds pair.Dataset, quality QualityAssessment, overview Overview) []Recommendation {
	var recs []Recommendation

	if len(ds) < targetPairs {
		recs = append(recs, Recommendation{
			Priority:    "high",
			Title:       "Increase Dataset Size",
			Description: fmt.Sprintf("Add %d more training pairs for better model performance.", targetPairs-len(ds)),
			Action:      "Import more source material or add pairs manually.",
		})
	}

	if quality.OverallScore < qualityAlertBelow {
		recs = append(recs, Recommendation{
			Priority:    "high",
			Title:       "Improve Data Quality",
			Description: fmt.Sprintf("Your quality score is %.0f%%. Focus on completeness and consistency.", quality.OverallScore),
			Action:      "Run the cleaning tool and review flagged pairs.",
		})
	}

	if overview.UniqueTags < minRecommendedTagKinds {
		recs = append(recs, Recommendation{
			Priority:    "medium",
			Title:       "Add More Tags",
			Description: "Tags help organize and analyze your dataset.",
			Action:      "Edit pairs and add relevant category tags.",
		})
	}

	return recs
}
