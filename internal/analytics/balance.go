package analytics

import "github.com/Caia-Tech/pairforge/pkg/pair"

// BalanceMetrics measures how completion length relates to prompt length.
type BalanceMetrics struct {
	AvgCompletionToPromptRatio float64 `json:"avg_completion_to_prompt_ratio"`
	BalanceScore               int     `json:"balance_score"`
	Recommendation             string  `json:"recommendation"`
}

// AnalyzeBalance averages the completion/prompt length ratio. Empty fields
// count as length 1 to keep the ratio defined.
func AnalyzeBalance(ds pair.Dataset) BalanceMetrics {
	sum := 0.0
	for _, p := range ds {
		pLen := len(p.Prompt)
		if pLen == 0 {
			pLen = 1
		}
		cLen := len(p.Completion)
		if cLen == 0 {
			cLen = 1
		}
		sum += float64(cLen) / float64(pLen)
	}
	avgRatio := sum / float64(len(ds))

	return BalanceMetrics{
		AvgCompletionToPromptRatio: round2(avgRatio),
		BalanceScore:               balanceScore(avgRatio),
		Recommendation:             balanceAdvice(avgRatio),
	}
}

// balanceScore bands the ratio; 3-7 is the ideal completion-to-prompt
// range for instruction tuning data.
func balanceScore(ratio float64) int {
	switch {
	case ratio >= 3 && ratio <= 7:
		return 100
	case ratio >= 2 && ratio <= 10:
		return 80
	case ratio >= 1.5 && ratio <= 15:
		return 60
	default:
		return 40
	}
}

func balanceAdvice(ratio float64) string {
	switch {
	case ratio < 2:
		return "Completions are too short"
	case ratio > 10:
		return "Completions might be too long"
	default:
		return "Well balanced"
	}
}
