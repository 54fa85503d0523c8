package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/erazemk/educycle/internal/model"
)

// Record keys.
const (
	UsersKey       = "educycle_users"
	ItemsKey       = "educycle_items"
	SessionKey     = "educycle_current_user"
	PermissionKey  = "local_storage_permission"
	imageKeyPrefix = "educycle_image_"
)

// Image is a stored item photo.
type Image struct {
	MIME string `json:"mime"`
	Data []byte `json:"data"`
}

// Records reads and writes the application's collections as whole JSON
// documents. Nothing is read or written unless the storage permission is
// granted: loads come back empty and saves are dropped.
type Records struct {
	Backend Backend

	// Now returns the clock used for seed data timestamps.
	Now func() time.Time
}

// NewRecords returns a Records over backend.
func NewRecords(backend Backend) *Records {
	return &Records{Backend: backend, Now: time.Now}
}

// Permission returns the stored storage permission. An unanswered prompt
// reads as PermissionPrompt.
func (r *Records) Permission(ctx context.Context) (model.Permission, error) {
	value, ok, err := r.Backend.Get(ctx, PermissionKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return model.PermissionPrompt, nil
	}
	switch p := model.Permission(value); p {
	case model.PermissionGranted, model.PermissionDenied:
		return p, nil
	default:
		return model.PermissionPrompt, nil
	}
}

// SetPermission stores the user's answer. The answer itself is always kept.
func (r *Records) SetPermission(ctx context.Context, p model.Permission) error {
	return r.Backend.Set(ctx, PermissionKey, string(p))
}

// Persisting reports whether the permission allows reads and writes.
func (r *Records) Persisting(ctx context.Context) (bool, error) {
	p, err := r.Permission(ctx)
	if err != nil {
		return false, err
	}
	return p == model.PermissionGranted, nil
}

// Users returns all users, seeding the defaults on first read.
func (r *Records) Users(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := loadSeeded(ctx, r, UsersKey, &users, model.DefaultUsers); err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	return users, nil
}

// SaveUsers overwrites the user collection.
func (r *Records) SaveUsers(ctx context.Context, users []model.User) error {
	if err := r.save(ctx, UsersKey, users); err != nil {
		return fmt.Errorf("saving users: %w", err)
	}
	return nil
}

// Items returns all items, seeding the defaults on first read.
func (r *Records) Items(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	seed := func() []model.Item { return model.DefaultItems(r.Now()) }
	if err := loadSeeded(ctx, r, ItemsKey, &items, seed); err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	return items, nil
}

// SaveItems overwrites the item collection.
func (r *Records) SaveItems(ctx context.Context, items []model.Item) error {
	if err := r.save(ctx, ItemsKey, items); err != nil {
		return fmt.Errorf("saving items: %w", err)
	}
	return nil
}

// Session returns the cached session user, or nil when nobody is signed in.
func (r *Records) Session(ctx context.Context) (*model.User, error) {
	user := &model.User{}
	found, err := r.load(ctx, SessionKey, user)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if !found {
		return nil, nil
	}
	return user, nil
}

// SaveSession caches user as the session user.
func (r *Records) SaveSession(ctx context.Context, user model.User) error {
	if err := r.save(ctx, SessionKey, user); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// ClearSession removes the session marker.
func (r *Records) ClearSession(ctx context.Context) error {
	if err := r.Backend.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Image returns the photo stored for an item, or nil.
func (r *Records) Image(ctx context.Context, itemID string) (*Image, error) {
	img := &Image{}
	found, err := r.load(ctx, imageKeyPrefix+itemID, img)
	if err != nil {
		return nil, fmt.Errorf("loading image: %w", err)
	}
	if !found {
		return nil, nil
	}
	return img, nil
}

// SaveImage stores the photo for an item.
func (r *Records) SaveImage(ctx context.Context, itemID string, img Image) error {
	if err := r.save(ctx, imageKeyPrefix+itemID, img); err != nil {
		return fmt.Errorf("saving image: %w", err)
	}
	return nil
}

// Reset removes both collections and the session. The next read seeds the
// defaults again. Item photos and the permission are left alone.
func (r *Records) Reset(ctx context.Context) error {
	if err := r.Backend.Delete(ctx, UsersKey, ItemsKey, SessionKey); err != nil {
		return fmt.Errorf("resetting records: %w", err)
	}
	return nil
}

// load decodes the record under key into dest. It reports false when the
// record is absent or persistence is not granted.
func (r *Records) load(ctx context.Context, key string, dest any) (bool, error) {
	ok, err := r.Persisting(ctx)
	if err != nil || !ok {
		return false, err
	}

	value, found, err := r.Backend.Get(ctx, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

// loadSeeded is load for collections: an absent record is replaced by the
// seed and written back.
func loadSeeded[T any](ctx context.Context, r *Records, key string, dest *[]T, seed func() []T) error {
	ok, err := r.Persisting(ctx)
	if err != nil || !ok {
		*dest = []T{}
		return err
	}

	found, err := r.load(ctx, key, dest)
	if err != nil {
		return err
	}
	if found {
		if *dest == nil {
			*dest = []T{}
		}
		return nil
	}

	*dest = seed()
	return r.save(ctx, key, *dest)
}

// save encodes value under key, or does nothing when persistence is not
// granted.
func (r *Records) save(ctx context.Context, key string, value any) error {
	ok, err := r.Persisting(ctx)
	if err != nil || !ok {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return r.Backend.Set(ctx, key, string(data))
}
