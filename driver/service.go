package driver

import (
	"context"
	"errors"
	"io"

	"github.com/mikios34/choonpaan/entity"
)

// ErrDriverNotFound is returned when updating a driver that does not exist.
var ErrDriverNotFound = errors.New("driver not found")

// DriverRequest carries the admin-editable driver fields.
type DriverRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DriverService defines the admin operations on drivers.
type DriverService interface {
	ListDrivers(ctx context.Context, query string) ([]entity.ProfileRecord, error)
	CreateDriver(ctx context.Context, req DriverRequest) (*entity.ProfileRecord, error)
	UpdateDriver(ctx context.Context, id string, req DriverRequest) (*entity.ProfileRecord, error)
	DeleteDriver(ctx context.Context, id string) error
	Report(ctx context.Context, query string, w io.Writer) error
}
