package store

import (
	"context"

	"github.com/mikios34/choonpaan/entity"
)

// Repository is keyed access to the role collections. There are no
// transactions and no concurrency tokens: concurrent writers to the same
// key race and the last Set wins.
type Repository interface {
	// Get returns ErrNotFound when no record is stored under collection/id.
	Get(ctx context.Context, collection entity.Collection, id string) (*entity.ProfileRecord, error)
	// Set replaces the full record stored under collection/id.
	Set(ctx context.Context, collection entity.Collection, id string, rec entity.ProfileRecord) error
	// Remove deletes collection/id. Removing an absent key is not an error.
	Remove(ctx context.Context, collection entity.Collection, id string) error
	// List snapshots every record in the collection, in no particular order.
	List(ctx context.Context, collection entity.Collection) ([]entity.ProfileRecord, error)
}
