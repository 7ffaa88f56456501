package cart

import (
	"context"

	"github.com/MarcGrol/storefront/lib/mystore"
)

// Storage is the persistence contract of the cart: an opaque key-value store holding
// one serialized value per key.
//
//go:generate mockgen -source=storage.go -package cart -destination storage_mock.go Storage
type Storage interface {
	Get(c context.Context, key string) (string, bool, error)
	Put(c context.Context, key string, value string) error
}

// StoredCart is the record kept in a mystore backend for each cart key.
type StoredCart struct {
	Key     string
	Payload string `datastore:",noindex"`
}

type storeStorage struct {
	store mystore.Store[StoredCart]
}

func NewStorage(store mystore.Store[StoredCart]) Storage {
	return &storeStorage{
		store: store,
	}
}

func (s *storeStorage) Get(c context.Context, key string) (string, bool, error) {
	stored, found, err := s.store.Get(c, key)
	if err != nil || !found {
		return "", found, err
	}
	return stored.Payload, true, nil
}

func (s *storeStorage) Put(c context.Context, key string, value string) error {
	return s.store.Put(c, key, StoredCart{Key: key, Payload: value})
}
