package mystore

import (
	"context"
	"fmt"
	"os"
	"strings"
)

type ctxTransactionKey struct{}

type Store[T any] interface {
	RunInTransaction(c context.Context, f func(c context.Context) error) error
	Put(c context.Context, uid string, value T) error
	Get(c context.Context, uid string) (T, bool, error)
	List(c context.Context) ([]T, error)
}

// New selects a backend from the environment: Cloud Datastore when running on
// Google Cloud, a sqlite file when MYSTORE_SQLITE_PATH is set, in-memory otherwise.
func New[T any](c context.Context) (Store[T], func(), error) {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		return newGcloudStore[T](c)
	}

	if path := os.Getenv("MYSTORE_SQLITE_PATH"); path != "" {
		return NewSqliteStore[T](c, path)
	}

	return NewInMemoryStore[T](c)
}

func kindOf[T any]() string {
	val := new(T)
	kind := fmt.Sprintf("%T", *val)
	if strings.Contains(kind, ".") {
		kind = strings.Split(kind, ".")[1]
	}
	return kind
}
