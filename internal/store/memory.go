package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an ExposureStore that lives only as long as the process.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]Exposure
}

func NewMemory() *MemoryStore {
	return &MemoryStore{rows: make(map[string]Exposure)}
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) SeenCount(_ context.Context, questionID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows[questionID].SeenCount, nil
}

func (s *MemoryStore) SeenCounts(_ context.Context, domain string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for id, e := range s.rows {
		if e.Domain == domain {
			counts[id] = e.SeenCount
		}
	}
	return counts, nil
}

func (s *MemoryStore) RecordExposure(_ context.Context, questionID, domain string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.increment(questionID, domain, at)
	return nil
}

func (s *MemoryStore) RecordExposures(_ context.Context, domain string, questionIDs []string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range questionIDs {
		s.increment(id, domain, at)
	}
	return nil
}

// increment must be called with mu held.
func (s *MemoryStore) increment(questionID, domain string, at time.Time) {
	e, ok := s.rows[questionID]
	if !ok {
		e = Exposure{QuestionID: questionID, Domain: domain}
	}
	e.SeenCount++
	e.LastSeen = at.UTC()
	s.rows[questionID] = e
}

func (s *MemoryStore) Exposure(_ context.Context, questionID string) (*Exposure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.rows[questionID]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (s *MemoryStore) StatsFor(_ context.Context, domain string) (ExposureStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st ExposureStats
	for _, e := range s.rows {
		if e.Domain != domain {
			continue
		}
		st.Tracked++
		switch {
		case e.SeenCount == 1:
			st.SeenOnce++
		case e.SeenCount == 2:
			st.SeenTwice++
		case e.SeenCount >= 3:
			st.Exhausted++
		}
	}
	return st, nil
}
