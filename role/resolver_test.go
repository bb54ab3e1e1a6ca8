package role

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/store"
	"github.com/mikios34/choonpaan/store/repository"
)

// recordingStore records which collections were read and can fail some.
type recordingStore struct {
	store.Repository
	mu    sync.Mutex
	reads []entity.Collection
	fail  map[entity.Collection]error
}

func (p *recordingStore) Get(ctx context.Context, c entity.Collection, id string) (*entity.ProfileRecord, error) {
	p.mu.Lock()
	p.reads = append(p.reads, c)
	err := p.fail[c]
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return p.Repository.Get(ctx, c, id)
}

func seed(t *testing.T, repo store.Repository, c entity.Collection, rec entity.ProfileRecord) {
	t.Helper()
	if err := repo.Set(context.Background(), c, rec.ID, rec); err != nil {
		t.Fatalf("seed %s/%s: %v", c, rec.ID, err)
	}
}

func TestResolveSingleCollection(t *testing.T) {
	mem := repository.NewMemoryStore()
	seed(t, mem, entity.Admins, entity.ProfileRecord{ID: "a1", Name: "Ada", UserType: entity.UserTypeAdmin})
	seed(t, mem, entity.Drivers, entity.ProfileRecord{ID: "d1", Name: "Dawit", UserType: entity.UserTypeDriver, Status: entity.DriverPending})
	seed(t, mem, entity.Users, entity.ProfileRecord{ID: "u1", Name: "Hana", UserType: entity.UserTypeUser})

	cases := []struct {
		id   string
		want entity.Role
	}{
		{"a1", entity.RoleAdmin},
		{"d1", entity.RoleDriver},
		{"u1", entity.RoleUser},
	}
	for _, parallel := range []bool{false, true} {
		r := NewResolver(mem, Parallel(parallel))
		for _, tc := range cases {
			res, err := r.Resolve(context.Background(), tc.id)
			if err != nil {
				t.Fatalf("parallel=%v resolve %s: %v", parallel, tc.id, err)
			}
			if res.Role != tc.want || res.Record.ID != tc.id {
				t.Fatalf("parallel=%v resolve %s: got %+v", parallel, tc.id, res)
			}
		}
	}
}

func TestResolveShortCircuits(t *testing.T) {
	ps := &recordingStore{Repository: repository.NewMemoryStore()}
	seed(t, ps, entity.Admins, entity.ProfileRecord{ID: "a1", Name: "Ada"})

	if _, err := NewResolver(ps).Resolve(context.Background(), "a1"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(ps.reads) != 1 || ps.reads[0] != entity.Admins {
		t.Fatalf("expected only admins read, got %v", ps.reads)
	}
}

func TestResolvePriorityOnOverlap(t *testing.T) {
	mem := repository.NewMemoryStore()
	seed(t, mem, entity.Drivers, entity.ProfileRecord{ID: "x", Name: "as driver"})
	seed(t, mem, entity.Admins, entity.ProfileRecord{ID: "x", Name: "as admin"})
	seed(t, mem, entity.Users, entity.ProfileRecord{ID: "x", Name: "as user"})

	for _, parallel := range []bool{false, true} {
		res, err := NewResolver(mem, Parallel(parallel)).Resolve(context.Background(), "x")
		if err != nil {
			t.Fatalf("parallel=%v: %v", parallel, err)
		}
		if res.Role != entity.RoleAdmin || res.Record.Name != "as admin" {
			t.Fatalf("parallel=%v: expected admin to win, got %+v", parallel, res)
		}
	}
}

func TestResolveNotFound(t *testing.T) {
	mem := repository.NewMemoryStore()
	for _, parallel := range []bool{false, true} {
		res, err := NewResolver(mem, Parallel(parallel)).Resolve(context.Background(), "ghost")
		if !errors.Is(err, ErrRoleNotFound) {
			t.Fatalf("parallel=%v: expected ErrRoleNotFound, got %v", parallel, err)
		}
		if res != nil {
			t.Fatalf("parallel=%v: expected no resolution, got %+v", parallel, res)
		}
	}
}

func TestResolveStoreErrorAborts(t *testing.T) {
	boom := &store.Error{Kind: store.KindNetwork, Op: "get", Collection: entity.Drivers, ID: "u1", Err: context.DeadlineExceeded}

	for _, parallel := range []bool{false, true} {
		ps := &recordingStore{
			Repository: repository.NewMemoryStore(),
			fail:       map[entity.Collection]error{entity.Drivers: boom},
		}
		seed(t, ps, entity.Users, entity.ProfileRecord{ID: "u1", Name: "Hana"})

		_, err := NewResolver(ps, Parallel(parallel)).Resolve(context.Background(), "u1")
		var se *store.Error
		if !errors.As(err, &se) || se.Kind != store.KindNetwork {
			t.Fatalf("parallel=%v: expected network store error, got %v", parallel, err)
		}
		if errors.Is(err, ErrRoleNotFound) {
			t.Fatalf("parallel=%v: store failure must not read as role not found", parallel)
		}
	}
}

func TestResolveParallelIgnoresLowerPriorityError(t *testing.T) {
	// the admin hit decides before the users failure is considered
	ps := &recordingStore{
		Repository: repository.NewMemoryStore(),
		fail:       map[entity.Collection]error{entity.Users: errors.New("permission denied")},
	}
	seed(t, ps, entity.Admins, entity.ProfileRecord{ID: "a1", Name: "Ada"})

	for _, parallel := range []bool{false, true} {
		res, err := NewResolver(ps, Parallel(parallel)).Resolve(context.Background(), "a1")
		if err != nil || res.Role != entity.RoleAdmin {
			t.Fatalf("parallel=%v: got %+v, %v", parallel, res, err)
		}
	}
}

func TestCustomOrder(t *testing.T) {
	mem := repository.NewMemoryStore()
	seed(t, mem, entity.Admins, entity.ProfileRecord{ID: "x"})
	seed(t, mem, entity.Users, entity.ProfileRecord{ID: "x"})

	r := NewResolver(mem, Order(
		Lookup{Collection: entity.Users, Role: entity.RoleUser},
		Lookup{Collection: entity.Admins, Role: entity.RoleAdmin},
	))
	res, err := r.Resolve(context.Background(), "x")
	if err != nil || res.Role != entity.RoleUser {
		t.Fatalf("expected custom order to pick user, got %+v, %v", res, err)
	}
}
