package storage

import (
	"context"
	"sync"
	"time"

	"github.com/Caia-Tech/pairforge/pkg/pair"
	"github.com/google/uuid"
)

// MemoryStore keeps the dataset in process memory. It backs tests and
// ephemeral sessions where nothing should survive a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	dataset pair.Dataset
	metrics MetricsCollector
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(metrics MetricsCollector) *MemoryStore {
	return &MemoryStore{metrics: metrics}
}

func (m *MemoryStore) List(ctx context.Context) (pair.Dataset, error) {
	start := time.Now()
	m.mu.RLock()
	out := append(pair.Dataset(nil), m.dataset...)
	m.mu.RUnlock()

	m.record("list", start, nil)
	return out, nil
}

func (m *MemoryStore) Get(ctx context.Context, index int) (pair.Pair, error) {
	start := time.Now()
	m.mu.RLock()
	defer m.mu.RUnlock()

	if index < 0 || index >= len(m.dataset) {
		m.record("get", start, ErrIndexOutOfRange)
		return pair.Pair{}, ErrIndexOutOfRange
	}
	m.record("get", start, nil)
	return m.dataset[index], nil
}

func (m *MemoryStore) Add(ctx context.Context, p pair.Pair) (pair.Pair, error) {
	start := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	stamp(&p)
	m.dataset = append(m.dataset, p)

	m.record("add", start, nil)
	return p, nil
}

func (m *MemoryStore) Update(ctx context.Context, index int, p pair.Pair) (pair.Pair, error) {
	start := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.dataset) {
		m.record("update", start, ErrIndexOutOfRange)
		return pair.Pair{}, ErrIndexOutOfRange
	}

	if p.ID == "" {
		p.ID = m.dataset[index].ID
	}
	p.Timestamp = time.Now().UTC()
	m.dataset[index] = p

	m.record("update", start, nil)
	return p, nil
}

func (m *MemoryStore) Delete(ctx context.Context, index int) error {
	start := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.dataset) {
		m.record("delete", start, ErrIndexOutOfRange)
		return ErrIndexOutOfRange
	}
	m.dataset = append(m.dataset[:index], m.dataset[index+1:]...)

	m.record("delete", start, nil)
	return nil
}

func (m *MemoryStore) Replace(ctx context.Context, ds pair.Dataset) error {
	start := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	replacement := make(pair.Dataset, len(ds))
	copy(replacement, ds)
	for i := range replacement {
		if replacement[i].ID == "" || replacement[i].Timestamp.IsZero() {
			stamp(&replacement[i])
		}
	}
	m.dataset = replacement

	m.record("replace", start, nil)
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	start := time.Now()
	m.mu.Lock()
	m.dataset = nil
	m.mu.Unlock()

	m.record("clear", start, nil)
	return nil
}

func (m *MemoryStore) Health(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) record(operation string, start time.Time, err error) {
	if m.metrics == nil {
		return
	}
	m.metrics.RecordMetric(OperationMetric{
		OperationType: operation,
		Duration:      time.Since(start).Nanoseconds(),
		Success:       err == nil,
		Backend:       "memory",
		Error:         err,
	})
}

// stamp assigns identity and creation time to a new pair, keeping any ID
// the caller already set.
func stamp(p *pair.Pair) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}
}
