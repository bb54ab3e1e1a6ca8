package service

import (
	"context"
	"io"
	"log"
	"time"

	customerpkg "github.com/mikios34/choonpaan/customer"
	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/report"
	"github.com/mikios34/choonpaan/store"
)

// customerService implements CustomerService.
type customerService struct {
	repo customerpkg.CustomerRepository
}

// NewCustomerService constructs a CustomerService backed by the provided repository.
func NewCustomerService(repo customerpkg.CustomerRepository) customerpkg.CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) ListCustomers(ctx context.Context, query string) ([]entity.ProfileRecord, error) {
	all, err := s.repo.Customers(ctx)
	if err != nil {
		return nil, err
	}
	return store.Search(all, query), nil
}

// DeleteCustomer removes the profile record only; the identity provider
// account is left in place and will no longer resolve to a role.
func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.repo.DeleteCustomer(ctx, id); err != nil {
		return err
	}
	log.Printf("customers: deleted %s", id)
	return nil
}

func (s *customerService) Report(ctx context.Context, query string, w io.Writer) error {
	customers, err := s.ListCustomers(ctx, query)
	if err != nil {
		return err
	}
	return report.Roster(w, "User Report", customers, time.Now())
}
