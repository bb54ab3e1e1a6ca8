package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	driverpkg "github.com/mikios34/choonpaan/driver"
	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/report"
	"github.com/mikios34/choonpaan/store"
)

type Service struct {
	repo driverpkg.DriverRepository
}

func NewService(r driverpkg.DriverRepository) driverpkg.DriverService {
	return &Service{repo: r}
}

func (s *Service) ListDrivers(ctx context.Context, query string) ([]entity.ProfileRecord, error) {
	all, err := s.repo.Drivers(ctx)
	if err != nil {
		return nil, err
	}
	return store.Search(all, query), nil
}

// CreateDriver adds a driver record on behalf of an admin. The record gets a
// fresh id and starts pending; it has no identity provider account.
func (s *Service) CreateDriver(ctx context.Context, req driverpkg.DriverRequest) (*entity.ProfileRecord, error) {
	name, email, err := validate(req)
	if err != nil {
		return nil, err
	}
	d := entity.ProfileRecord{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		UserType: entity.UserTypeDriver,
		Status:   entity.DriverPending,
	}
	created, err := s.repo.StoreDriver(ctx, d)
	if err != nil {
		return nil, err
	}
	log.Printf("drivers: created %s", created.ID)
	return created, nil
}

// UpdateDriver overlays name and email on the stored record, keeping its
// status and profile image.
func (s *Service) UpdateDriver(ctx context.Context, id string, req driverpkg.DriverRequest) (*entity.ProfileRecord, error) {
	name, email, err := validate(req)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.DriverByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", driverpkg.ErrDriverNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	merged := *current
	merged.ID = id
	merged.Name = name
	merged.Email = email
	if merged.UserType == "" {
		merged.UserType = entity.UserTypeDriver
	}
	return s.repo.StoreDriver(ctx, merged)
}

func (s *Service) DeleteDriver(ctx context.Context, id string) error {
	if err := s.repo.DeleteDriver(ctx, id); err != nil {
		return err
	}
	log.Printf("drivers: deleted %s", id)
	return nil
}

func (s *Service) Report(ctx context.Context, query string, w io.Writer) error {
	drivers, err := s.ListDrivers(ctx, query)
	if err != nil {
		return err
	}
	return report.Roster(w, "Driver Report", drivers, time.Now())
}

func validate(req driverpkg.DriverRequest) (string, string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", "", entity.Required("name")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return "", "", entity.Required("email")
	}
	return name, email, nil
}
