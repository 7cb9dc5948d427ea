package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps tenders in process memory. It is used when no database
// is configured and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	tenders map[uuid.UUID]*Tender
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tenders: make(map[uuid.UUID]*Tender), now: time.Now}
}

func (s *MemoryStore) CreateTender(_ context.Context, t *Tender) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	t.ID = uuid.New()
	if t.Status == "" {
		t.Status = StatusOpen
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	s.tenders[t.ID] = clone(t)
	return nil
}

func (s *MemoryStore) GetTender(_ context.Context, id uuid.UUID) (*Tender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tenders[id]
	if !ok {
		return nil, nil
	}
	return clone(t), nil
}

func (s *MemoryStore) ListTenders(_ context.Context, filter TenderFilter) ([]*Tender, error) {
	s.mu.RLock()
	var out []*Tender
	for _, t := range s.tenders {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, clone(t))
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) UpdateTender(_ context.Context, t *Tender) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tenders[t.ID]
	if !ok {
		return fmt.Errorf("tender %s not found", t.ID)
	}
	if existing.Status == StatusClosed {
		return fmt.Errorf("tender %s: %w", t.ID, ErrTenderClosed)
	}
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = s.now().UTC()
	s.tenders[t.ID] = clone(t)
	return nil
}

func (s *MemoryStore) GetOpenTenders(_ context.Context) ([]*Tender, error) {
	s.mu.RLock()
	var out []*Tender
	for _, t := range s.tenders {
		if t.Status != StatusClosed {
			out = append(out, clone(t))
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Deadline.Equal(out[j].Deadline) {
			return out[i].Deadline.Before(out[j].Deadline)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

func clone(t *Tender) *Tender {
	c := *t
	c.RequiredTechnologies = append([]string(nil), t.RequiredTechnologies...)
	if t.SimilarTenders != nil {
		c.SimilarTenders = append(c.SimilarTenders[:0:0], t.SimilarTenders...)
	}
	if t.Criteria != nil {
		c.Criteria = append(c.Criteria[:0:0], t.Criteria...)
	}
	if t.GoNoGoScore != nil {
		v := *t.GoNoGoScore
		c.GoNoGoScore = &v
	}
	if t.EvaluatedAt != nil {
		v := *t.EvaluatedAt
		c.EvaluatedAt = &v
	}
	return &c
}
