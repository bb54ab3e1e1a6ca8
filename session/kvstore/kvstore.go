// Package kvstore holds the local key-value backends for persisted sessions.
package kvstore

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by a store after Close.
var ErrClosed = errors.New("kv store closed")

// Store is the contract every backend here satisfies.
type Store interface {
	MultiGet(ctx context.Context, keys []string) (map[string]string, error)
	MultiSet(ctx context.Context, entries map[string]string) error
	MultiRemove(ctx context.Context, keys []string) error
}

// Memory keeps entries in process memory.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]string)}
}

func (m *Memory) MultiGet(ctx context.Context, keys []string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := m.entries[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (m *Memory) MultiSet(ctx context.Context, entries map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range entries {
		m.entries[k] = v
	}
	return nil
}

func (m *Memory) MultiRemove(ctx context.Context, keys []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

type prefixed struct {
	inner  Store
	prefix string
}

// WithPrefix scopes every key of inner under prefix. The HTTP server keeps
// one session per issued token this way.
func WithPrefix(inner Store, prefix string) Store {
	return &prefixed{inner: inner, prefix: prefix}
}

func (p *prefixed) MultiGet(ctx context.Context, keys []string) (map[string]string, error) {
	vals, err := p.inner.MultiGet(ctx, p.keys(keys))
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(vals))
	for _, k := range keys {
		if v, ok := vals[p.prefix+k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (p *prefixed) MultiSet(ctx context.Context, entries map[string]string) error {
	scoped := make(map[string]string, len(entries))
	for k, v := range entries {
		scoped[p.prefix+k] = v
	}
	return p.inner.MultiSet(ctx, scoped)
}

func (p *prefixed) MultiRemove(ctx context.Context, keys []string) error {
	return p.inner.MultiRemove(ctx, p.keys(keys))
}

func (p *prefixed) keys(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = p.prefix + k
	}
	return out
}
