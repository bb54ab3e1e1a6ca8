package repository

import (
	"context"

	customerpkg "github.com/mikios34/choonpaan/customer"
	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/store"
)

// StoreCustomerRepo implements customer.CustomerRepository over the users
// collection of the record store.
type StoreCustomerRepo struct {
	records store.Repository
}

func NewStoreCustomerRepo(records store.Repository) customerpkg.CustomerRepository {
	return &StoreCustomerRepo{records: records}
}

func (r *StoreCustomerRepo) Customers(ctx context.Context) ([]entity.ProfileRecord, error) {
	return r.records.List(ctx, entity.Users)
}

func (r *StoreCustomerRepo) DeleteCustomer(ctx context.Context, id string) error {
	return r.records.Remove(ctx, entity.Users, id)
}
