package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	adminpkg "github.com/mikios34/choonpaan/admin"
	"github.com/mikios34/choonpaan/entity"
)

// adminService implements AdminService.
type adminService struct {
	repo adminpkg.AdminRepository
}

// NewAdminService constructs an AdminService backed by the provided repository.
func NewAdminService(repo adminpkg.AdminRepository) adminpkg.AdminService {
	return &adminService{repo: repo}
}

// RegisterAdmin writes an admin record for an existing principal. Records the
// principal may hold in other collections are left alone; the admin record
// wins at role resolution.
func (s *adminService) RegisterAdmin(ctx context.Context, req adminpkg.RegisterAdminRequest) (*entity.ProfileRecord, error) {
	id := strings.TrimSpace(req.PrincipalID)
	if id == "" {
		return nil, entity.Required("principalId")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, entity.Required("name")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, entity.Required("email")
	}

	exists, err := s.repo.AdminExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", adminpkg.ErrAdminExists, id)
	}

	created, err := s.repo.StoreAdmin(ctx, entity.ProfileRecord{
		ID:       id,
		Name:     name,
		Email:    email,
		UserType: entity.UserTypeAdmin,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("admins: registered %s", id)
	return created, nil
}
