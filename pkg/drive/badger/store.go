// Package badger provides a persistent drive.Store backed by BadgerDB.
package badger

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/marmos91/pixvault/internal/logger"
	"github.com/marmos91/pixvault/pkg/drive"
)

// BadgerStore implements drive.Store using BadgerDB for persistence.
//
// Suitable for production use: records survive restarts and crashes
// (WAL-based recovery), and complex mutations run inside ACID transactions.
// In particular the whole cascade deletion of a folder tree executes in a
// single transaction, so a crash mid-cascade never leaves a partially
// removed subtree on disk.
//
// Thread Safety:
// BadgerDB transactions provide snapshot isolation; the store holds no
// additional mutable state, so it is safe for concurrent use from multiple
// goroutines.
//
// Storage Model:
// A namespaced key-value layout (see keys.go) with JSON record values and
// compact index entries for owner scoping, parent/child relations and
// sibling names.
type BadgerStore struct {
	db   *badger.DB
	opts drive.StoreOptions
}

// Config contains BadgerStore configuration.
type Config struct {
	// Path is the database directory. Empty with InMemory unset is invalid.
	Path string `mapstructure:"path"`

	// InMemory runs badger without persistence (tests only)
	InMemory bool `mapstructure:"in_memory"`

	// SyncWrites makes every commit fsync before returning
	SyncWrites bool `mapstructure:"sync_writes"`
}

// NewBadgerStore opens (or creates) the database at cfg.Path.
func NewBadgerStore(cfg Config, opts drive.StoreOptions) (*BadgerStore, error) {
	if cfg.Path == "" && !cfg.InMemory {
		return nil, fmt.Errorf("badger store: path is required")
	}

	badgerOpts := badger.DefaultOptions(cfg.Path).
		WithInMemory(cfg.InMemory).
		WithSyncWrites(cfg.SyncWrites).
		WithLogger(nil)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	logger.Info("badger store opened: path=%s in_memory=%t unique_names=%t",
		cfg.Path, cfg.InMemory, opts.UniqueNames)

	return &BadgerStore{db: db, opts: opts}, nil
}

// Close flushes and closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// notFound builds the canonical not-found error for a record kind.
func notFound(what string) error {
	return &drive.StoreError{Code: drive.ErrNotFound, Message: what + " not found"}
}

// forbidden builds the canonical wrong-owner error for a record kind.
func forbidden(what string) error {
	return &drive.StoreError{Code: drive.ErrForbidden, Message: what + " belongs to another owner"}
}
