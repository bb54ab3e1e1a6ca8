package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikios34/choonpaan/session/kvstore"
)

// indexKey holds the expiry of every open scope as a JSON object of
// session id to unix seconds.
const indexKey = "sessions/index"

// Registry hands out the session managers of server-issued session ids.
// Each scope opened through Open expires after ttl; expired scopes are
// reclaimed the next time a scope is opened. The device Manager is not
// tracked here and never expires.
type Registry struct {
	mu  sync.Mutex
	kv  KV
	ttl time.Duration
	now func() time.Time
}

func NewRegistry(kv KV, ttl time.Duration) *Registry {
	return &Registry{kv: kv, ttl: ttl, now: time.Now}
}

func scopePrefix(id string) string { return "sessions/" + id + "/" }

// ScopedSessions returns the manager of an existing scope. It does not
// record or extend an expiry.
func (r *Registry) ScopedSessions(id string) *Manager {
	return NewManager(kvstore.WithPrefix(r.kv, scopePrefix(id)))
}

// Open records a new scope with its expiry, reclaims the scopes that have
// expired, and returns the manager for id.
func (r *Registry) Open(ctx context.Context, id string) (*Manager, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, err := r.loadIndex(ctx)
	if err != nil {
		return nil, err
	}
	now := r.now()
	var stale []string
	for sid, exp := range idx {
		if !now.Before(time.Unix(exp, 0)) {
			stale = append(stale, sid)
		}
	}
	if len(stale) > 0 {
		keys := make([]string, 0, len(stale)*len(stateKeys))
		for _, sid := range stale {
			for _, k := range stateKeys {
				keys = append(keys, scopePrefix(sid)+k)
			}
			delete(idx, sid)
		}
		if err := r.kv.MultiRemove(ctx, keys); err != nil {
			return nil, fmt.Errorf("reclaiming sessions: %w", err)
		}
		log.Printf("sessions: reclaimed %d expired sessions", len(stale))
	}

	idx[id] = now.Add(r.ttl).Unix()
	if err := r.saveIndex(ctx, idx); err != nil {
		return nil, err
	}
	return r.ScopedSessions(id), nil
}

// Release clears the scope and forgets its expiry. Releasing an unknown
// scope is not an error.
func (r *Registry) Release(ctx context.Context, id string) error {
	if err := r.ScopedSessions(id).Clear(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, err := r.loadIndex(ctx)
	if err != nil {
		return err
	}
	if _, ok := idx[id]; !ok {
		return nil
	}
	delete(idx, id)
	return r.saveIndex(ctx, idx)
}

// Len reports the number of scopes currently tracked.
func (r *Registry) Len(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, err := r.loadIndex(ctx)
	return len(idx), err
}

func (r *Registry) loadIndex(ctx context.Context) (map[string]int64, error) {
	vals, err := r.kv.MultiGet(ctx, []string{indexKey})
	if err != nil {
		return nil, fmt.Errorf("reading session index: %w", err)
	}
	idx := map[string]int64{}
	raw, ok := vals[indexKey]
	if !ok || raw == "" {
		return idx, nil
	}
	if err := json.Unmarshal([]byte(raw), &idx); err != nil {
		// an unreadable index only loses reclamation, not sessions
		log.Printf("sessions: discarding unreadable index: %v", err)
		return map[string]int64{}, nil
	}
	return idx, nil
}

func (r *Registry) saveIndex(ctx context.Context, idx map[string]int64) error {
	if len(idx) == 0 {
		if err := r.kv.MultiRemove(ctx, []string{indexKey}); err != nil {
			return fmt.Errorf("writing session index: %w", err)
		}
		return nil
	}
	data, err := json.Marshal(idx)
	if err != nil {
		return fmt.Errorf("encoding session index: %w", err)
	}
	if err := r.kv.MultiSet(ctx, map[string]string{indexKey: string(data)}); err != nil {
		return fmt.Errorf("writing session index: %w", err)
	}
	return nil
}
