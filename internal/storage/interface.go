package storage

import (
	"context"
	"errors"

	"github.com/Caia-Tech/pairforge/pkg/pair"
)

// ErrIndexOutOfRange is returned by index-addressed operations when the
// position does not exist in the dataset.
var ErrIndexOutOfRange = errors.New("pair index out of range")

// Store persists the training dataset. Pairs are addressed by position:
// insertion order is the dataset's chronology and backends must preserve
// it. Implementations set ID and Timestamp on create and refresh
// Timestamp on update.
type Store interface {
	List(ctx context.Context) (pair.Dataset, error)
	Get(ctx context.Context, index int) (pair.Pair, error)
	Add(ctx context.Context, p pair.Pair) (pair.Pair, error)
	Update(ctx context.Context, index int, p pair.Pair) (pair.Pair, error)
	Delete(ctx context.Context, index int) error

	// Replace swaps the whole dataset in one operation. Bulk imports and
	// whole-dataset rewrites (dedupe, validate) go through here.
	Replace(ctx context.Context, ds pair.Dataset) error
	Clear(ctx context.Context) error

	Health(ctx context.Context) error
}

// OperationMetric is telemetry for one store operation.
type OperationMetric struct {
	OperationType string
	Duration      int64 // nanoseconds
	Success       bool
	Backend       string
	Error         error
}

// MetricsCollector receives store operation metrics.
type MetricsCollector interface {
	RecordMetric(metric OperationMetric)
}
