package customer

import (
	"context"
	"io"

	"github.com/mikios34/choonpaan/entity"
)

// CustomerService exposes the admin operations on customer accounts.
type CustomerService interface {
	// ListCustomers returns customers whose name or email contains query,
	// ignoring case. An empty query lists everyone.
	ListCustomers(ctx context.Context, query string) ([]entity.ProfileRecord, error)
	DeleteCustomer(ctx context.Context, id string) error
	// Report writes the filtered customer list as a PDF roster.
	Report(ctx context.Context, query string, w io.Writer) error
}
