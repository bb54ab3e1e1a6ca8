package role

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/store"
)

// ErrRoleNotFound means the principal authenticated but has no profile
// record in any role collection.
var ErrRoleNotFound = errors.New("role not found")

// Lookup pairs a collection with the role a hit in it grants.
type Lookup struct {
	Collection entity.Collection
	Role       entity.Role
}

// DefaultOrder is the priority order used to resolve a principal. Earlier
// lookups win when an id is present in more than one collection.
var DefaultOrder = []Lookup{
	{Collection: entity.Admins, Role: entity.RoleAdmin},
	{Collection: entity.Drivers, Role: entity.RoleDriver},
	{Collection: entity.Users, Role: entity.RoleUser},
}

// Resolution is the role a principal resolved to and the record found for it.
type Resolution struct {
	Role   entity.Role          `json:"role"`
	Record entity.ProfileRecord `json:"record"`
}

// Resolver finds the role of a principal by looking up collections in order.
type Resolver struct {
	repo     store.Repository
	order    []Lookup
	parallel bool
}

type Option func(*Resolver)

// Parallel issues every lookup at once. Results are joined before the
// priority order is applied, so the outcome matches sequential resolution.
func Parallel(on bool) Option {
	return func(r *Resolver) { r.parallel = on }
}

// Order replaces the lookup list.
func Order(lookups ...Lookup) Option {
	return func(r *Resolver) { r.order = append([]Lookup(nil), lookups...) }
}

func NewResolver(repo store.Repository, opts ...Option) *Resolver {
	r := &Resolver{repo: repo, order: DefaultOrder}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the first lookup that holds principalID. A store failure
// on any lookup aborts resolution with that error; it is never treated as a
// miss.
func (r *Resolver) Resolve(ctx context.Context, principalID string) (*Resolution, error) {
	if r.parallel {
		return r.resolveParallel(ctx, principalID)
	}
	for _, p := range r.order {
		rec, err := r.repo.Get(ctx, p.Collection, principalID)
		if res, done, err := evaluate(p, rec, err); done {
			return res, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, principalID)
}

type lookupResult struct {
	rec *entity.ProfileRecord
	err error
}

func (r *Resolver) resolveParallel(ctx context.Context, principalID string) (*Resolution, error) {
	// A plain Group: one failing lookup does not cancel the others.
	results := make([]lookupResult, len(r.order))
	var g errgroup.Group
	for i, p := range r.order {
		g.Go(func() error {
			rec, err := r.repo.Get(ctx, p.Collection, principalID)
			results[i] = lookupResult{rec: rec, err: err}
			return nil
		})
	}
	_ = g.Wait()

	for i, p := range r.order {
		if res, done, err := evaluate(p, results[i].rec, results[i].err); done {
			return res, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, principalID)
}

// evaluate reports whether a lookup result ends resolution.
func evaluate(p Lookup, rec *entity.ProfileRecord, err error) (*Resolution, bool, error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, false, nil
	case err != nil:
		return nil, true, err
	case rec == nil:
		return nil, false, nil
	}
	return &Resolution{Role: p.Role, Record: *rec}, true, nil
}
