package history

import (
	"context"
	"sync"
)

type memory struct {
	mu      sync.Mutex
	results []Result
}

// NewMemory keeps results for the life of the process.
func NewMemory() Recorder {
	return &memory{}
}

func (m *memory) Record(ctx context.Context, r Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	return nil
}

func (m *memory) Recent(ctx context.Context, player string, limit int) ([]Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = DefaultLimit
	}
	out := make([]Result, 0, limit)
	for i := len(m.results) - 1; i >= 0 && len(out) < limit; i-- {
		if r := m.results[i]; r.P1 == player || r.P2 == player {
			out = append(out, r)
		}
	}
	return out, nil
}
