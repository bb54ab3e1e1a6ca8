package driver

import (
	"context"

	"github.com/mikios34/choonpaan/entity"
)

// DriverRepository defines storage operations on the drivers collection.
// DriverByID returns store.ErrNotFound for an unknown id.
type DriverRepository interface {
	StoreDriver(ctx context.Context, d entity.ProfileRecord) (*entity.ProfileRecord, error)
	Drivers(ctx context.Context) ([]entity.ProfileRecord, error)
	DriverByID(ctx context.Context, id string) (*entity.ProfileRecord, error)
	DeleteDriver(ctx context.Context, id string) error
}
