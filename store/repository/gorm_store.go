package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/store"
)

// profileRow is the relational shape of a ProfileRecord. One table holds
// all collections, keyed by (collection, id).
type profileRow struct {
	Collection   string    `gorm:"type:text;primaryKey"`
	ID           string    `gorm:"type:text;primaryKey"`
	Name         string    `gorm:"type:text;not null;default:''"`
	Email        string    `gorm:"type:text;index;not null;default:''"`
	UserType     string    `gorm:"type:text;not null;default:''"`
	ProfileImage string    `gorm:"type:text"`
	Status       string    `gorm:"type:text;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (profileRow) TableName() string { return "profiles" }

func rowFrom(collection entity.Collection, id string, rec entity.ProfileRecord) profileRow {
	return profileRow{
		Collection:   string(collection),
		ID:           id,
		Name:         rec.Name,
		Email:        rec.Email,
		UserType:     string(rec.UserType),
		ProfileImage: rec.ProfileImage,
		Status:       string(rec.Status),
	}
}

func (r profileRow) record() entity.ProfileRecord {
	return entity.ProfileRecord{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		UserType:     entity.UserType(r.UserType),
		ProfileImage: r.ProfileImage,
		Status:       entity.DriverStatus(r.Status),
	}
}

// GormStore implements store.Repository using GORM.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) store.Repository {
	return &GormStore{db: db}
}

// OpenPostgres connects to Postgres and migrates the profiles table.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&profileRow{}); err != nil {
		return nil, err
	}
	return db, nil
}

func (r *GormStore) Get(ctx context.Context, collection entity.Collection, id string) (*entity.ProfileRecord, error) {
	if err := store.CheckKey(id); err != nil {
		return nil, err
	}
	var row profileRow
	err := r.db.WithContext(ctx).Where("collection = ? AND id = ?", string(collection), id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, store.Wrap("get", collection, id, err)
	}
	rec := row.record()
	return &rec, nil
}

func (r *GormStore) Set(ctx context.Context, collection entity.Collection, id string, rec entity.ProfileRecord) error {
	if err := store.CheckKey(id); err != nil {
		return err
	}
	row := rowFrom(collection, id, rec)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "user_type", "profile_image", "status", "updated_at"}),
	}).Create(&row).Error
	return store.Wrap("set", collection, id, err)
}

func (r *GormStore) Remove(ctx context.Context, collection entity.Collection, id string) error {
	if err := store.CheckKey(id); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Where("collection = ? AND id = ?", string(collection), id).Delete(&profileRow{}).Error
	return store.Wrap("remove", collection, id, err)
}

func (r *GormStore) List(ctx context.Context, collection entity.Collection) ([]entity.ProfileRecord, error) {
	var rows []profileRow
	if err := r.db.WithContext(ctx).Where("collection = ?", string(collection)).Find(&rows).Error; err != nil {
		return nil, store.Wrap("list", collection, "", err)
	}
	out := make([]entity.ProfileRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.record())
	}
	return out, nil
}
