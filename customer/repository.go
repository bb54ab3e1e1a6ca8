package customer

import (
	"context"

	"github.com/mikios34/choonpaan/entity"
)

// CustomerRepository specifies storage operations on the users collection.
type CustomerRepository interface {
	Customers(ctx context.Context) ([]entity.ProfileRecord, error)
	DeleteCustomer(ctx context.Context, id string) error
}
