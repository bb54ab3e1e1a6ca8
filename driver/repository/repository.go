package repository

import (
	"context"

	driverpkg "github.com/mikios34/choonpaan/driver"
	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/store"
)

type Repository struct {
	records store.Repository
}

func NewRepository(records store.Repository) driverpkg.DriverRepository {
	return &Repository{records: records}
}

func (r *Repository) StoreDriver(ctx context.Context, d entity.ProfileRecord) (*entity.ProfileRecord, error) {
	if err := r.records.Set(ctx, entity.Drivers, d.ID, d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) Drivers(ctx context.Context) ([]entity.ProfileRecord, error) {
	return r.records.List(ctx, entity.Drivers)
}

func (r *Repository) DriverByID(ctx context.Context, id string) (*entity.ProfileRecord, error) {
	return r.records.Get(ctx, entity.Drivers, id)
}

func (r *Repository) DeleteDriver(ctx context.Context, id string) error {
	return r.records.Remove(ctx, entity.Drivers, id)
}
