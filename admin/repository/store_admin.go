package repository

import (
	"context"
	"errors"

	adminpkg "github.com/mikios34/choonpaan/admin"
	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/store"
)

// StoreAdminRepo implements admin.AdminRepository over the admins
// collection of the record store.
type StoreAdminRepo struct {
	records store.Repository
}

func NewStoreAdminRepo(records store.Repository) adminpkg.AdminRepository {
	return &StoreAdminRepo{records: records}
}

func (r *StoreAdminRepo) StoreAdmin(ctx context.Context, a entity.ProfileRecord) (*entity.ProfileRecord, error) {
	if err := r.records.Set(ctx, entity.Admins, a.ID, a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *StoreAdminRepo) AdminExists(ctx context.Context, id string) (bool, error) {
	_, err := r.records.Get(ctx, entity.Admins, id)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
