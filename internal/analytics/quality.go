package analytics

import (
	"math"
	"strings"

	"github.com/Caia-Tech/pairforge/pkg/pair"
)

// QualityScores holds the four sub-scores, each in [0,100].
type QualityScores struct {
	Completeness  float64 `json:"completeness"`
	Consistency   float64 `json:"consistency"`
	Uniqueness    float64 `json:"uniqueness"`
	LengthQuality float64 `json:"length_quality"`
}

// Grade is the banded letter grade with its fixed display label.
type Grade struct {
	Letter  string `json:"letter"`
	Color   string `json:"color"`
	Message string `json:"message"`
}

// QualityAssessment is the scored quality summary of a dataset.
type QualityAssessment struct {
	Scores       QualityScores `json:"scores"`
	OverallScore float64       `json:"overall_score"`
	Grade        Grade         `json:"grade"`
	Issues       []string      `json:"issues"`
}

// Thresholds for pair length adequacy and issue reporting.
const (
	minAdequatePromptLen     = 10
	minAdequateCompletionLen = 20
	lengthQualityTarget      = 80
)

// AssessQuality scores the dataset on four axes and grades the mean.
// Defined for non-empty datasets only; callers gate on length.
//
// Consistency is 100 minus the coefficient of variation of prompt word
// counts, floored at 0. The formula is informal and can dip below zero
// before the floor; it is preserved as-is for behavioral parity with
// earlier tooling.
func AssessQuality(ds pair.Dataset) QualityAssessment {
	scores := QualityScores{
		Completeness:  completenessScore(ds),
		Consistency:   consistencyScore(ds),
		Uniqueness:    uniquenessScore(ds),
		LengthQuality: lengthQualityScore(ds),
	}

	overall := (scores.Completeness + scores.Consistency + scores.Uniqueness + scores.LengthQuality) / 4

	return QualityAssessment{
		Scores:       scores,
		OverallScore: math.Round(overall),
		Grade:        gradeFor(overall),
		Issues:       qualityIssues(scores),
	}
}

func completenessScore(ds pair.Dataset) float64 {
	complete := 0
	for _, p := range ds {
		if p.Complete() {
			complete++
		}
	}
	return float64(complete) / float64(len(ds)) * 100
}

func consistencyScore(ds pair.Dataset) float64 {
	counts := make([]float64, len(ds))
	sum := 0.0
	for i, p := range ds {
		// strings.Split on a single space matches the original word-count
		// semantics, including counting an empty prompt as one "word".
		counts[i] = float64(len(strings.Split(p.Prompt, " ")))
		sum += counts[i]
	}
	mean := sum / float64(len(ds))

	variance := 0.0
	for _, c := range counts {
		variance += (c - mean) * (c - mean)
	}
	variance /= float64(len(ds))

	return math.Max(0, 100-math.Sqrt(variance)/mean*100)
}

func uniquenessScore(ds pair.Dataset) float64 {
	seen := make(map[string]bool, len(ds))
	unique := 0
	for _, p := range ds {
		key := p.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique++
	}
	return float64(unique) / float64(len(ds)) * 100
}

func lengthQualityScore(ds pair.Dataset) float64 {
	adequate := 0
	for _, p := range ds {
		if len(p.Prompt) >= minAdequatePromptLen && len(p.Completion) >= minAdequateCompletionLen {
			adequate++
		}
	}
	return float64(adequate) / float64(len(ds)) * 100
}

func gradeFor(score float64) Grade {
	switch {
	case score >= 90:
		return Grade{Letter: "A+", Color: "#10b981", Message: "Excellent!"}
	case score >= 80:
		return Grade{Letter: "A", Color: "#10b981", Message: "Great!"}
	case score >= 70:
		return Grade{Letter: "B", Color: "#3b82f6", Message: "Good"}
	case score >= 60:
		return Grade{Letter: "C", Color: "#f59e0b", Message: "Fair"}
	default:
		return Grade{Letter: "D", Color: "#ef4444", Message: "Needs Work"}
	}
}

func qualityIssues(scores QualityScores) []string {
	issues := []string{}
	if scores.Completeness < 100 {
		issues = append(issues, "Some pairs have empty fields")
	}
	if scores.Uniqueness < 100 {
		issues = append(issues, "Dataset contains duplicates")
	}
	if scores.LengthQuality < lengthQualityTarget {
		issues = append(issues, "Some responses are too short")
	}
	return issues
}
