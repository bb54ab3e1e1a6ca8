package admin

import (
	"context"
	"errors"

	"github.com/mikios34/choonpaan/entity"
)

// ErrAdminExists is returned when the principal already has an admin record.
var ErrAdminExists = errors.New("admin already exists")

// RegisterAdminRequest carries the data required to register an admin.
// PrincipalID is the identity provider id of an existing principal.
type RegisterAdminRequest struct {
	PrincipalID string `json:"principalId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
}

// AdminService exposes admin-related business operations.
type AdminService interface {
	RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (*entity.ProfileRecord, error)
}
