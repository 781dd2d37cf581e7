package analytics

import (
	"fmt"
	"math"

	"github.com/Caia-Tech/pairforge/pkg/pair"
)

// trendBatches is how many sequential slices the dataset is cut into for
// trend reporting.
const trendBatches = 5

// TrendBucket summarizes one sequential slice of the dataset.
type TrendBucket struct {
	Period    string `json:"period"`
	AvgLength int    `json:"avg_length"`
	Count     int    `json:"count"`
}

// AnalyzeTrends splits the dataset, in insertion order, into up to five
// equal batches and reports the average completion length of each.
// Datasets smaller than the batch count produce fewer buckets, never
// empty ones.
func AnalyzeTrends(ds pair.Dataset) []TrendBucket {
	chunkSize := int(math.Ceil(float64(len(ds)) / float64(trendBatches)))
	trends := make([]TrendBucket, 0, trendBatches)

	for i := 0; i < trendBatches && i*chunkSize < len(ds); i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > len(ds) {
			end = len(ds)
		}
		chunk := ds[start:end]

		sum := 0
		for _, p := range chunk {
			sum += len(p.Completion)
		}

		trends = append(trends, TrendBucket{
			Period:    fmt.Sprintf("Batch %d", i+1),
			AvgLength: roundInt(float64(sum) / float64(len(chunk))),
			Count:     len(chunk),
		})
	}
	return trends
}
