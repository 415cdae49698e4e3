// Package sqlite provides the public API for the SQLite shelf backend.
// This package exposes the factory function for creating SQLite stores
// while keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/shelf/internal/sqlite"
	"github.com/mesh-intelligence/shelf/pkg/store"
)

// NewStore creates a new SQLite shelf instance.
// The store is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	shelf := sqlite.NewStore()
//	err := shelf.Attach(store.Config{
//	    Backend: store.BackendSQLite,
//	    DataDir: ".shelf-db",
//	})
//	defer shelf.Detach()
func NewStore() store.Shelf {
	return sqlite.NewStore()
}
