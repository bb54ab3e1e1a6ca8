package admin

import (
	"context"

	"github.com/mikios34/choonpaan/entity"
)

// AdminRepository specifies storage operations on the admins collection.
type AdminRepository interface {
	StoreAdmin(ctx context.Context, a entity.ProfileRecord) (*entity.ProfileRecord, error)
	AdminExists(ctx context.Context, id string) (bool, error)
}
