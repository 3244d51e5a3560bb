package repositories

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var ErrKeyNotFound = errors.New("state key not found")

// KeyValueStore is the opaque persistence collaborator: it stores whole
// serialized aggregates under string keys and knows nothing about their shape.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// ListTournaments returns the distinct tournament IDs that have stored state.
	ListTournaments(ctx context.Context) ([]string, error)
}

type memoryKeyValueStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKeyValueStore keeps state in process memory. Used for local runs and tests.
func NewMemoryKeyValueStore() KeyValueStore {
	return &memoryKeyValueStore{data: make(map[string][]byte)}
}

func (s *memoryKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *memoryKeyValueStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}

func (s *memoryKeyValueStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return ErrKeyNotFound
	}
	delete(s.data, key)
	return nil
}

func (s *memoryKeyValueStore) ListTournaments(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	for k := range s.data {
		seen[tournamentIDFromKey(k)] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// SchemaEnsurer is implemented by SQL-backed stores that create their table on startup.
type SchemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}
