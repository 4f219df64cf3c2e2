package memory

import (
	"context"
	"sync"
	"time"
)

const idempotencyTTL = time.Hour

type idemEntry struct {
	value   string
	expires time.Time
}

// IdempotencyStore is the in-process counterpart of the Redis store.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]idemEntry
	now     func() time.Time
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{entries: make(map[string]idemEntry), now: time.Now}
}

func (s *IdempotencyStore) Seen(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[scope+":"+key]
	if !ok {
		return "", false, nil
	}
	if s.now().After(e.expires) {
		delete(s.entries, scope+":"+key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *IdempotencyStore) Remember(_ context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[scope+":"+key] = idemEntry{value: value, expires: s.now().Add(idempotencyTTL)}
	return nil
}
