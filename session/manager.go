package session

import (
	"context"
	"fmt"

	"github.com/mikios34/choonpaan/auth"
	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/role"
)

// Keys of the persisted SessionState entries.
const (
	KeyIsLoggedIn = "isLoggedIn"
	KeyUserEmail  = "userEmail"
	KeyUserID     = "userId"
	KeyRole       = "role"
)

var stateKeys = []string{KeyIsLoggedIn, KeyUserEmail, KeyUserID, KeyRole}

// KV is a local persistent string store. MultiSet writes all entries or
// none. Missing keys are simply absent from MultiGet's result.
type KV interface {
	MultiGet(ctx context.Context, keys []string) (map[string]string, error)
	MultiSet(ctx context.Context, entries map[string]string) error
	MultiRemove(ctx context.Context, keys []string) error
}

// Manager owns the persisted SessionState of one device.
type Manager struct {
	kv KV
}

func NewManager(kv KV) *Manager {
	return &Manager{kv: kv}
}

// Bootstrap persists a session for a freshly resolved principal. Any prior
// state is overwritten.
func (m *Manager) Bootstrap(ctx context.Context, p auth.Principal, res role.Resolution) (*entity.SessionState, error) {
	st := entity.SessionState{
		IsLoggedIn: true,
		UserEmail:  p.Email,
		UserID:     p.ID,
		Role:       res.Role,
	}
	err := m.kv.MultiSet(ctx, map[string]string{
		KeyIsLoggedIn: "true",
		KeyUserEmail:  st.UserEmail,
		KeyUserID:     st.UserID,
		KeyRole:       string(st.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	return &st, nil
}

// Restore reads the persisted session without contacting any remote
// service. It returns nil, nil when no usable session is stored.
func (m *Manager) Restore(ctx context.Context) (*entity.SessionState, error) {
	vals, err := m.kv.MultiGet(ctx, stateKeys)
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	if vals[KeyIsLoggedIn] != "true" || vals[KeyUserID] == "" {
		return nil, nil
	}
	r, ok := entity.ParseRole(vals[KeyRole])
	if !ok {
		return nil, nil
	}
	return &entity.SessionState{
		IsLoggedIn: true,
		UserEmail:  vals[KeyUserEmail],
		UserID:     vals[KeyUserID],
		Role:       r,
	}, nil
}

// Clear deletes the persisted session. Clearing twice is not an error.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.kv.MultiRemove(ctx, stateKeys); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
