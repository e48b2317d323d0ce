// Package store persists the editor's document under a fixed key in a
// durable key/value store.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/zjrosen/draftpad/internal/infrastructure/sqlite"
)

// KV is a string key/value store. Set is all-or-nothing.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	UpdatedAt(ctx context.Context, key string) (time.Time, bool, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the KV for backend. path is only used by the sqlite backend.
func Open(backend, path string) (KV, error) {
	switch backend {
	case BackendSQLite, "":
		kv, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// SQLiteKV is the kv table of a sqlite database file.
type SQLiteKV struct {
	*sqlite.KVRepository
	db *sqlite.DB
}

// OpenSQLite opens the database at path and migrates it.
func OpenSQLite(path string) (*SQLiteKV, error) {
	db, err := sqlite.NewDB(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteKV{KVRepository: db.KV(), db: db}, nil
}

// Path returns the database file path.
func (s *SQLiteKV) Path() string { return s.db.Path() }

// Close closes the database.
func (s *SQLiteKV) Close() error { return s.db.Close() }
