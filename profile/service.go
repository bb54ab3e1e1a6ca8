package profile

import (
	"context"

	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/media"
)

// Owner is the signed-in principal whose profile is being edited. The record
// lives in the collection of Role.
type Owner struct {
	ID    string
	Role  entity.Role
	Email string
}

// Changes lists the fields to overlay on the stored record. Nil fields are
// left as stored.
type Changes struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// Editor loads and saves the owner's own profile record.
type Editor interface {
	// Load returns the stored record, or defaults when none is stored.
	Load(ctx context.Context, owner Owner) (*entity.ProfileRecord, error)
	// Save reads the current record, overlays changes and writes it back.
	Save(ctx context.Context, owner Owner, changes Changes) (*entity.ProfileRecord, error)
	// UploadImage publishes img and attaches its URL through Save.
	UploadImage(ctx context.Context, owner Owner, img media.Image) (*entity.ProfileRecord, error)
}

// String returns a pointer to s, for building Changes.
func String(s string) *string { return &s }
