package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProductRepository reads the two candidate product sources. Both return
// snapshots: the optimizer never writes back.
type ProductRepository interface {
	GlobalProducts(ctx context.Context) ([]Product, error)
	UserProducts(ctx context.Context, userID uuid.UUID) ([]Product, error)
}

// MenuRepository persists plans the user chose to keep.
type MenuRepository interface {
	Save(ctx context.Context, menu *SavedMenu) error
	FindByName(ctx context.Context, userID uuid.UUID, name string) (*SavedMenu, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]SavedMenu, error)
	ListNames(ctx context.Context, userID uuid.UUID) ([]string, error)
	DeleteByName(ctx context.Context, userID uuid.UUID, name string) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
