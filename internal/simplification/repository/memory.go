package repository

import (
	"context"
	"sync"
	"time"

	"github.com/gogotex/gogotex/backend/go-simplifier/internal/simplification"
	"github.com/google/uuid"
)

// MemoryRecorder keeps records in process memory. Tests use it to observe what
// the service persists without a live database.
type MemoryRecorder struct {
	mu      sync.RWMutex
	records []*simplification.Record
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

func (m *MemoryRecorder) Store(ctx context.Context, rec *simplification.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	cp := *rec
	m.records = append(m.records, &cp)
	return nil
}

// List returns a snapshot of the stored records in insertion order.
func (m *MemoryRecorder) List() []*simplification.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*simplification.Record, len(m.records))
	copy(out, m.records)
	return out
}

// StaticConnector always returns the same Recorder. A StaticConnector with a
// nil Recorder models an absent store.
type StaticConnector struct {
	Recorder Recorder
}

func (s StaticConnector) Connect(ctx context.Context) Recorder {
	return s.Recorder
}
