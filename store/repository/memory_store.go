package repository

import (
	"context"
	"sync"

	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/store"
)

// MemoryStore implements store.Repository in process memory. Records are
// copied in and out so callers never share state with the store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[entity.Collection]map[string]entity.ProfileRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[entity.Collection]map[string]entity.ProfileRecord)}
}

func (s *MemoryStore) Get(ctx context.Context, collection entity.Collection, id string) (*entity.ProfileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Wrap("get", collection, id, err)
	}
	if err := store.CheckKey(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.data[collection][id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &rec, nil
}

func (s *MemoryStore) Set(ctx context.Context, collection entity.Collection, id string, rec entity.ProfileRecord) error {
	if err := ctx.Err(); err != nil {
		return store.Wrap("set", collection, id, err)
	}
	if err := store.CheckKey(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.data[collection]
	if !ok {
		coll = make(map[string]entity.ProfileRecord)
		s.data[collection] = coll
	}
	coll[id] = rec
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, collection entity.Collection, id string) error {
	if err := ctx.Err(); err != nil {
		return store.Wrap("remove", collection, id, err)
	}
	if err := store.CheckKey(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[collection], id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, collection entity.Collection) ([]entity.ProfileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Wrap("list", collection, "", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.ProfileRecord, 0, len(s.data[collection]))
	for _, rec := range s.data[collection] {
		out = append(out, rec)
	}
	return out, nil
}
