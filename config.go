package main

import (
	"context"
	"os"

	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/services/cart"
)

type config struct {
	port       string
	projectID  string
	sqlitePath string
	cartKey    string
}

func configFromEnvironment() config {
	return config{
		port:       getenv("PORT", "8080"),
		projectID:  os.Getenv("GOOGLE_CLOUD_PROJECT"),
		sqlitePath: os.Getenv("MYSTORE_SQLITE_PATH"),
		cartKey:    getenv("CART_KEY", cart.DefaultKey),
	}
}

func getenv(name string, defaultValue string) string {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue
	}
	return value
}

// newStore honours a --db flag that was given without the MYSTORE_SQLITE_PATH environment
// variable. On Google Cloud the datastore always wins.
func newStore[T any](c context.Context, cfg config) (mystore.Store[T], func(), error) {
	if cfg.projectID == "" && cfg.sqlitePath != "" {
		return mystore.NewSqliteStore[T](c, cfg.sqlitePath)
	}
	return mystore.New[T](c)
}
