package analytics

import (
	"strings"
	"testing"

	"github.com/Caia-Tech/pairforge/pkg/pair"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePair(prompt, completion string, tags ...string) pair.Pair {
	return pair.Pair{Prompt: prompt, Completion: completion, Tags: tags}
}

func sampleDataset() pair.Dataset {
	return pair.Dataset{
		makePair("What is machine learning?", "Machine learning is a field of study that gives computers the ability to learn from data without being explicitly programmed.", "ml"),
		makePair("Explain neural networks briefly.", "Neural networks are computing systems inspired by biological brains. They learn representations from examples through layered transformations.", "ml", "deep-learning"),
		makePair("What is a training pair?", "A training pair couples a prompt with its desired completion so a model can learn the mapping between them.", "data"),
	}
}

func TestAnalyzeEmptyDatasetReturnsNil(t *testing.T) {
	assert.Nil(t, Analyze(nil))
	assert.Nil(t, Analyze(pair.Dataset{}))
}

func TestAnalyzeProducesFullReport(t *testing.T) {
	report := Analyze(sampleDataset())
	require.NotNil(t, report)

	assert.Equal(t, 3, report.Overview.TotalPairs)
	assert.NotEmpty(t, report.Insights)
	assert.NotEmpty(t, report.Trends)
	assert.Len(t, report.Distribution.Histogram, 5)
}

func TestQualityScoresStayInRange(t *testing.T) {
	datasets := []pair.Dataset{
		sampleDataset(),
		{makePair("", ""), makePair("a", "b")},
		{makePair("same prompt", "same completion"), makePair("same prompt", "same completion")},
		{makePair("one", strings.Repeat("x", 500))},
	}

	for _, ds := range datasets {
		q := AssessQuality(ds)
		for _, score := range []float64{q.Scores.Completeness, q.Scores.Consistency, q.Scores.Uniqueness, q.Scores.LengthQuality, q.OverallScore} {
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		}
	}
}

func TestUniquenessDropsWithDuplicates(t *testing.T) {
	clean := sampleDataset()
	dirty := append(append(pair.Dataset{}, clean...), clean[0])

	assert.Equal(t, 100.0, AssessQuality(clean).Scores.Uniqueness)
	assert.Less(t, AssessQuality(dirty).Scores.Uniqueness, 100.0)
	assert.Contains(t, AssessQuality(dirty).Issues, "Dataset contains duplicates")
}

func TestUniquenessNeverDecreasesWhenDuplicatesRemoved(t *testing.T) {
	dirty := append(append(pair.Dataset{}, sampleDataset()...), sampleDataset()[0], sampleDataset()[1])
	deduped := pair.RemoveExactDuplicates(dirty)

	assert.GreaterOrEqual(t,
		AssessQuality(deduped).Scores.Uniqueness,
		AssessQuality(dirty).Scores.Uniqueness)
}

func TestGradeBands(t *testing.T) {
	tests := []struct {
		score  float64
		letter string
	}{
		{95, "A+"},
		{90, "A+"},
		{85, "A"},
		{75, "B"},
		{65, "C"},
		{40, "D"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.letter, gradeFor(tt.score).Letter, "score %v", tt.score)
	}
}

func TestCompletenessFlagsEmptyFields(t *testing.T) {
	ds := pair.Dataset{
		makePair("prompt text here", "completion text here"),
		makePair("   ", "completion text here"),
	}
	q := AssessQuality(ds)
	assert.Equal(t, 50.0, q.Scores.Completeness)
	assert.Contains(t, q.Issues, "Some pairs have empty fields")
}

func TestDiversityCountsDistinctVocabulary(t *testing.T) {
	ds := pair.Dataset{
		makePair("alpha bravo charlie", "delta echo foxtrot", "x"),
		makePair("alpha bravo charlie", "delta echo foxtrot", "x", "y"),
	}
	d := AnalyzeDiversity(ds)

	// Tokens of length three or less are dropped before counting.
	assert.Equal(t, 3, d.UniquePromptWords)
	assert.Equal(t, 3, d.UniqueCompletionWords)
	assert.Equal(t, 6, d.VocabularySize)
	assert.Equal(t, 50.0, d.LexicalDiversity)
	assert.Equal(t, map[string]int{"x": 2, "y": 1}, d.TagDistribution)
}

func TestTopWordsOrderAndLimit(t *testing.T) {
	tokens := []string{"gamma", "alpha", "beta", "alpha", "beta", "alpha"}
	top := TopWords(tokens, 2)

	require.Len(t, top, 2)
	assert.Equal(t, WordCount{Word: "alpha", Count: 3}, top[0])
	assert.Equal(t, WordCount{Word: "beta", Count: 2}, top[1])
}

func TestDistributionStats(t *testing.T) {
	stats := distributionStats([]int{10, 20, 20, 30, 100})

	assert.Equal(t, 10, stats.Min)
	assert.Equal(t, 100, stats.Max)
	assert.Equal(t, 36, stats.Mean)
	assert.Equal(t, 20, stats.Median)
	assert.Equal(t, 20, stats.Mode)
	assert.Equal(t, 90, stats.Range)
}

func TestHistogramConservesCounts(t *testing.T) {
	values := []int{5, 10, 15, 20, 25, 30, 100}
	bins := Histogram(values, 5)

	require.Len(t, bins, 5)
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, len(values), total)
}

func TestHistogramUniformValuesLandInFirstBin(t *testing.T) {
	bins := Histogram([]int{42, 42, 42}, 5)

	require.Len(t, bins, 5)
	assert.Equal(t, 3, bins[0].Count)
	for _, b := range bins[1:] {
		assert.Zero(t, b.Count)
	}
}

func TestReadabilityLevels(t *testing.T) {
	assert.Equal(t, "Very Easy", readabilityLevel(95))
	assert.Equal(t, "Standard", readabilityLevel(60))
	assert.Equal(t, "Difficult", readabilityLevel(20))
}

func TestReadabilityCountsUnterminatedCompletionAsOneSentence(t *testing.T) {
	ds := pair.Dataset{
		makePair("q", "no terminal punctuation at all"),
		makePair("q", "One sentence here. Another one follows."),
	}
	r := AnalyzeReadability(ds)
	// First pair: 5 words over 1 sentence (no boundary still leaves one
	// non-blank segment). Second: 6 words over 2 sentences. (5+3)/2 = 4.
	assert.Equal(t, 4, r.AvgSentenceLength)
	assert.Equal(t, "Simple", r.Complexity)
}

func TestBalanceIdealRatioScoresFull(t *testing.T) {
	ds := pair.Dataset{makePair(strings.Repeat("p", 20), strings.Repeat("c", 100))}
	b := AnalyzeBalance(ds)

	assert.Equal(t, 5.0, b.AvgCompletionToPromptRatio)
	assert.Equal(t, 100, b.BalanceScore)
	assert.Equal(t, "Well balanced", b.Recommendation)
}

func TestBalanceBandEdges(t *testing.T) {
	assert.Equal(t, 100, balanceScore(3))
	assert.Equal(t, 100, balanceScore(7))
	assert.Equal(t, 80, balanceScore(2))
	assert.Equal(t, 60, balanceScore(1.5))
	assert.Equal(t, 40, balanceScore(20))
	assert.Equal(t, "Completions are too short", balanceAdvice(1))
	assert.Equal(t, "Completions might be too long", balanceAdvice(12))
}

func TestTrendsBatchCountAndCoverage(t *testing.T) {
	ds := make(pair.Dataset, 12)
	for i := range ds {
		ds[i] = makePair("prompt", strings.Repeat("c", i+1))
	}
	trends := AnalyzeTrends(ds)

	require.Len(t, trends, 4) // ceil(12/5)=3 per chunk, 4 chunks cover 12
	total := 0
	for _, b := range trends {
		total += b.Count
	}
	assert.Equal(t, 12, total)
	assert.Equal(t, "Batch 1", trends[0].Period)
}

func TestTrendsSmallDataset(t *testing.T) {
	trends := AnalyzeTrends(pair.Dataset{makePair("p", "completion")})
	require.Len(t, trends, 1)
	assert.Equal(t, 1, trends[0].Count)
	assert.Equal(t, 10, trends[0].AvgLength)
}

func TestInsightsNeverEmpty(t *testing.T) {
	ds := make(pair.Dataset, 60)
	for i := range ds {
		ds[i] = makePair(
			strings.Repeat("varied prompt wording number ", 2)+strings.Repeat("x", i),
			strings.Repeat("a sufficiently long and varied completion body ", 3)+strings.Repeat(string(rune('a'+i%26)), 5),
		)
	}
	quality := AssessQuality(ds)
	diversity := AnalyzeDiversity(ds)
	overview := ComputeOverview(ds)

	insights := GenerateInsights(ds, quality, diversity, overview)
	require.NotEmpty(t, insights)
}

func TestInsightsFlagSmallDataset(t *testing.T) {
	ds := sampleDataset()
	insights := GenerateInsights(ds, AssessQuality(ds), AnalyzeDiversity(ds), ComputeOverview(ds))

	require.NotEmpty(t, insights)
	assert.Equal(t, "warning", insights[0].Type)
	assert.Contains(t, insights[0].Message, "only 3 pairs")
}

func TestRecommendationsForSmallLowQualityDataset(t *testing.T) {
	ds := pair.Dataset{makePair("", "")}
	recs := GenerateRecommendations(ds, AssessQuality(ds), ComputeOverview(ds))

	require.NotEmpty(t, recs)
	assert.Equal(t, "Increase Dataset Size", recs[0].Title)
	assert.Contains(t, recs[0].Description, "Add 99 more")
}

func TestScanForIssues(t *testing.T) {
	ds := pair.Dataset{
		makePair("a long enough prompt for the scan", "a long enough completion for the scan"),
		makePair("a long enough prompt for the scan", "a long enough completion for the scan"),
		makePair("short", "tiny"),
		makePair("", "a long enough completion for the scan"),
	}
	issues := ScanForIssues(ds)
	require.Len(t, issues, 3)

	byType := map[string]CleaningIssue{}
	for _, issue := range issues {
		byType[issue.Type] = issue
	}
	assert.Equal(t, []int{1}, byType["duplicates"].AffectedPairs)
	assert.Equal(t, []int{2}, byType["short-text"].AffectedPairs)
	assert.Equal(t, []int{3}, byType["empty-fields"].AffectedPairs)
}

func TestScanForIssuesCleanDataset(t *testing.T) {
	assert.Empty(t, ScanForIssues(sampleDataset()))
}

func TestOverviewEstimates(t *testing.T) {
	ds := pair.Dataset{makePair(strings.Repeat("p", 10), strings.Repeat("c", 30), "a", "b")}
	o := ComputeOverview(ds)

	assert.Equal(t, 1, o.TotalPairs)
	assert.Equal(t, 40, o.TotalCharacters)
	assert.Equal(t, 8, o.TotalWords)
	assert.Equal(t, 10, o.EstimatedTokens)
	assert.Equal(t, 10, o.AvgPromptLength)
	assert.Equal(t, 30, o.AvgCompletionLength)
	assert.Equal(t, 2, o.UniqueTags)
}
