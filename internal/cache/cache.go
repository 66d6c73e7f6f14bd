package cache

import (
	"sync"

	"github.com/google/uuid"
)

// Key identifies one cached read: an entity family plus its scope tuple.
// Daily entities use (entity, user, day); per-user collections leave Day
// empty; shared collections leave both empty.
type Key struct {
	Entity string
	UserID uuid.UUID
	Day    string
}

func Daily(entity string, userID uuid.UUID, day string) Key {
	return Key{Entity: entity, UserID: userID, Day: day}
}

func ForUser(entity string, userID uuid.UUID) Key {
	return Key{Entity: entity, UserID: userID}
}

func Shared(entity string) Key {
	return Key{Entity: entity}
}

// Store is an in-process read cache. Each service owns the keys of its own
// entity family and invalidates them when a mutation succeeds; a read after
// invalidation re-fetches from the database. Failed loads are never cached,
// so prior state survives a failed refresh.
type Store struct {
	mu      sync.RWMutex
	entries map[Key]interface{}
}

func NewStore() *Store {
	return &Store{entries: make(map[Key]interface{})}
}

// GetOrLoad returns the cached value for key, calling load on a miss and
// caching its result. Concurrent misses may race to load; last write wins,
// which is harmless since every load reads current database state.
func (s *Store) GetOrLoad(key Key, load func() (interface{}, error)) (interface{}, error) {
	s.mu.RLock()
	v, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err := load()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.entries[key] = v
	s.mu.Unlock()
	return v, nil
}

// Invalidate drops the given keys.
func (s *Store) Invalidate(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.entries, k)
	}
}

// InvalidateEntity drops every key of an entity family, regardless of scope.
// Used by batch jobs that mutate rows for many users at once.
func (s *Store) InvalidateEntity(entity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.entries {
		if k.Entity == entity {
			delete(s.entries, k)
		}
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
