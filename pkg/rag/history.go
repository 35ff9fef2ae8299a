package rag

import (
	"context"
	"sync"
	"time"
)

// Transcript is one question and the answer it got.
type Transcript struct {
	Query          string         `json:"query" bson:"query"`
	Classification Classification `json:"classification" bson:"classification"`
	Answer         string         `json:"answer" bson:"answer"`
	CreatedAt      time.Time      `json:"createdAt" bson:"createdAt"`
}

type HistoryStore interface {
	Append(ctx context.Context, t Transcript) error
	// Latest returns up to limit transcripts, newest first.
	Latest(ctx context.Context, limit int) ([]Transcript, error)
}

const defaultHistoryCap = 500

// MemoryHistory keeps the most recent transcripts in a ring.
type MemoryHistory struct {
	mu    sync.Mutex
	items []Transcript
	cap   int
}

func NewMemoryHistory(capacity int) *MemoryHistory {
	if capacity <= 0 {
		capacity = defaultHistoryCap
	}
	return &MemoryHistory{cap: capacity}
}

func (m *MemoryHistory) Append(_ context.Context, t Transcript) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, t)
	if len(m.items) > m.cap {
		m.items = m.items[len(m.items)-m.cap:]
	}
	return nil
}

func (m *MemoryHistory) Latest(_ context.Context, limit int) ([]Transcript, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Transcript, 0, min(limit, len(m.items)))
	for i := len(m.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.items[i])
	}
	return out, nil
}
