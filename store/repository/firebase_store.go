package repository

import (
	"context"

	"firebase.google.com/go/v4/db"
	"firebase.google.com/go/v4/errorutils"

	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/store"
)

// FirebaseStore implements store.Repository on the Firebase Realtime
// Database. Records live at {collection}/{id}.
type FirebaseStore struct {
	client *db.Client
}

func NewFirebaseStore(client *db.Client) store.Repository {
	return &FirebaseStore{client: client}
}

func (r *FirebaseStore) ref(collection entity.Collection, id string) *db.Ref {
	if id == "" {
		return r.client.NewRef(string(collection))
	}
	return r.client.NewRef(string(collection) + "/" + id)
}

func (r *FirebaseStore) Get(ctx context.Context, collection entity.Collection, id string) (*entity.ProfileRecord, error) {
	if err := store.CheckKey(id); err != nil {
		return nil, err
	}
	// The database returns null for a missing path, which leaves rec nil.
	var rec *entity.ProfileRecord
	if err := r.ref(collection, id).Get(ctx, &rec); err != nil {
		return nil, wrapFirebase("get", collection, id, err)
	}
	if rec == nil {
		return nil, store.ErrNotFound
	}
	if rec.ID == "" {
		rec.ID = id
	}
	return rec, nil
}

func (r *FirebaseStore) Set(ctx context.Context, collection entity.Collection, id string, rec entity.ProfileRecord) error {
	if err := store.CheckKey(id); err != nil {
		return err
	}
	if err := r.ref(collection, id).Set(ctx, rec); err != nil {
		return wrapFirebase("set", collection, id, err)
	}
	return nil
}

func (r *FirebaseStore) Remove(ctx context.Context, collection entity.Collection, id string) error {
	if err := store.CheckKey(id); err != nil {
		return err
	}
	if err := r.ref(collection, id).Delete(ctx); err != nil {
		return wrapFirebase("remove", collection, id, err)
	}
	return nil
}

func (r *FirebaseStore) List(ctx context.Context, collection entity.Collection) ([]entity.ProfileRecord, error) {
	var byID map[string]entity.ProfileRecord
	if err := r.ref(collection, "").Get(ctx, &byID); err != nil {
		return nil, wrapFirebase("list", collection, "", err)
	}
	out := make([]entity.ProfileRecord, 0, len(byID))
	for key, rec := range byID {
		// records written by older admin screens carry no id field
		if rec.ID == "" {
			rec.ID = key
		}
		out = append(out, rec)
	}
	return out, nil
}

func wrapFirebase(op string, collection entity.Collection, id string, err error) error {
	if errorutils.IsUnavailable(err) || errorutils.IsDeadlineExceeded(err) {
		return &store.Error{Kind: store.KindNetwork, Op: op, Collection: collection, ID: id, Err: err}
	}
	return store.Wrap(op, collection, id, err)
}
