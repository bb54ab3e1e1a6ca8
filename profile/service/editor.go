package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/media"
	profilepkg "github.com/mikios34/choonpaan/profile"
	"github.com/mikios34/choonpaan/store"
)

// editor implements profile.Editor.
type editor struct {
	repo     store.Repository
	uploader media.Uploader
}

// NewEditor constructs a profile.Editor. uploader may be nil when image
// upload is not configured.
func NewEditor(repo store.Repository, uploader media.Uploader) profilepkg.Editor {
	return &editor{repo: repo, uploader: uploader}
}

func (e *editor) Load(ctx context.Context, owner profilepkg.Owner) (*entity.ProfileRecord, error) {
	rec, err := e.repo.Get(ctx, owner.Role.Collection(), owner.ID)
	if errors.Is(err, store.ErrNotFound) {
		return defaults(owner), nil
	}
	if err != nil {
		return nil, err
	}
	// records written by the admin screens may carry no email
	if rec.Email == "" {
		rec.Email = owner.Email
	}
	return rec, nil
}

func (e *editor) Save(ctx context.Context, owner profilepkg.Owner, changes profilepkg.Changes) (*entity.ProfileRecord, error) {
	name, err := required("name", changes.Name)
	if err != nil {
		return nil, err
	}
	email, err := required("email", changes.Email)
	if err != nil {
		return nil, err
	}

	coll := owner.Role.Collection()
	current, err := e.repo.Get(ctx, coll, owner.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		current = &entity.ProfileRecord{}
	case err != nil:
		return nil, err
	}

	merged := *current
	if merged.ID == "" {
		merged.ID = owner.ID
	}
	if merged.UserType == "" {
		merged.UserType = owner.Role.UserType()
	}
	if merged.Email == "" {
		merged.Email = owner.Email
	}
	if name != nil {
		merged.Name = *name
	}
	if email != nil {
		merged.Email = *email
	}
	if changes.ProfileImage != nil {
		merged.ProfileImage = *changes.ProfileImage
	}

	if err := e.repo.Set(ctx, coll, owner.ID, merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (e *editor) UploadImage(ctx context.Context, owner profilepkg.Owner, img media.Image) (*entity.ProfileRecord, error) {
	if e.uploader == nil {
		return nil, &media.UploadError{Message: "image upload is not configured"}
	}
	url, err := e.uploader.Upload(ctx, img)
	if err != nil {
		log.Printf("profile: upload for %s failed: %v", owner.ID, err)
		return nil, err
	}
	return e.Save(ctx, owner, profilepkg.Changes{ProfileImage: &url})
}

func defaults(owner profilepkg.Owner) *entity.ProfileRecord {
	return &entity.ProfileRecord{
		ID:       owner.ID,
		Email:    owner.Email,
		UserType: owner.Role.UserType(),
	}
}

// required trims a present field and rejects it when nothing is left.
func required(field string, v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil, entity.Required(field)
	}
	return &trimmed, nil
}
