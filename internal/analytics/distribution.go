package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/Caia-Tech/pairforge/pkg/pair"
)

// defaultHistogramBins is the fixed bin count of the completion-length
// histogram.
const defaultHistogramBins = 5

// DistributionStats summarizes one length series.
type DistributionStats struct {
	Min    int `json:"min"`
	Max    int `json:"max"`
	Mean   int `json:"mean"`
	Median int `json:"median"`
	Mode   int `json:"mode"`
	Range  int `json:"range"`
}

// HistogramBin is one equal-width bucket of the completion-length
// histogram.
type HistogramBin struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// DistributionMetrics covers prompt and completion length spread.
type DistributionMetrics struct {
	Prompt     DistributionStats `json:"prompt"`
	Completion DistributionStats `json:"completion"`
	Histogram  []HistogramBin    `json:"histogram"`
}

// AnalyzeDistribution computes length statistics over both fields and an
// equal-width histogram over completion lengths.
func AnalyzeDistribution(ds pair.Dataset) DistributionMetrics {
	promptLengths := make([]int, len(ds))
	completionLengths := make([]int, len(ds))
	for i, p := range ds {
		promptLengths[i] = len(p.Prompt)
		completionLengths[i] = len(p.Completion)
	}

	return DistributionMetrics{
		Prompt:     distributionStats(promptLengths),
		Completion: distributionStats(completionLengths),
		Histogram:  Histogram(completionLengths, defaultHistogramBins),
	}
}

func distributionStats(lengths []int) DistributionStats {
	sorted := append([]int(nil), lengths...)
	sort.Ints(sorted)

	sum := 0
	for _, v := range sorted {
		sum += v
	}

	return DistributionStats{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   roundInt(float64(sum) / float64(len(sorted))),
		Median: sorted[len(sorted)/2],
		Mode:   mode(sorted),
		Range:  sorted[len(sorted)-1] - sorted[0],
	}
}

// mode returns the most frequent value; ties go to the smallest value.
func mode(sorted []int) int {
	counts := make(map[int]int)
	for _, v := range sorted {
		counts[v]++
	}

	best, bestCount := sorted[0], 0
	for _, v := range sorted {
		if c := counts[v]; c > bestCount {
			best, bestCount = v, c
		}
	}
	return best
}

// Histogram buckets values into bins equal-width ranges. The sum of bin
// counts always equals len(values). With all values equal the width is
// zero and everything lands in the first bin.
func Histogram(values []int, bins int) []HistogramBin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	width := float64(max-min) / float64(bins)
	counts := make([]int, bins)
	for _, v := range values {
		idx := 0
		if width > 0 {
			idx = int(math.Floor(float64(v-min) / width))
			if idx > bins-1 {
				idx = bins - 1
			}
		}
		counts[idx]++
	}

	out := make([]HistogramBin, bins)
	for i, c := range counts {
		lo := roundInt(float64(min) + float64(i)*width)
		hi := roundInt(float64(min) + float64(i+1)*width)
		out[i] = HistogramBin{Range: fmt.Sprintf("%d-%d", lo, hi), Count: c}
	}
	return out
}
