package reconcile

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a Store backed by a slice, used by tests and dry runs.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record
}

func (s *MemoryStore) Query(_ context.Context, filter Filter) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Record
	for _, r := range s.records {
		if filter.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) Create(_ context.Context, record Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.Id = uuid.NewString()
	s.records = append(s.records, record)
	return record, nil
}

// Records returns a copy of everything stored so far.
func (s *MemoryStore) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.records...)
}
