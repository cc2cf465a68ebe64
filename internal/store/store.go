// Package store wraps a Badger database with typed collections for the
// Shopmate domain. All multi-document invariants (transaction/stock
// lockstep, attendee sets) are enforced here inside single Badger
// transactions, never by callers.
package store

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/shopmateapp/shopmate-server/internal/domain"
	"github.com/shopmateapp/shopmate-server/internal/normalize"
)

// Key prefixes for each collection.
const (
	contactPrefix = "contact:"
	bookPrefix    = "book:"
	txnPrefix     = "txn:"
	eventPrefix   = "event:"
	userPrefix    = "user:"
)

// conflictRetries bounds how often a ledger write is retried when Badger
// detects a serialization conflict with a concurrent commit.
const conflictRetries = 20

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	Contacts     *Entity[domain.Contact]
	Books        *Entity[domain.Book]
	Transactions *Entity[domain.Transaction]
	Events       *Entity[domain.Event]
	Users        *Entity[domain.User]
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	store.Contacts = NewEntity[domain.Contact](store, contactPrefix)
	store.Books = NewEntity[domain.Book](store, bookPrefix)
	store.Transactions = NewEntity[domain.Transaction](store, txnPrefix)
	store.Events = NewEntity[domain.Event](store, eventPrefix)

	// Users are indexed by email, case-insensitively, so that login lookups
	// work no matter how the address is typed.
	store.Users = NewEntity[domain.User](store, userPrefix).
		WithIndexTransform("email",
			func(u *domain.User) []string {
				return []string{normalize.Email(u.Email)}
			},
			normalize.Email,
		)

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// updateWithRetry runs fn in a Badger update transaction, retrying a bounded
// number of times when the commit loses a serialization conflict against a
// concurrent writer. Each attempt re-reads inside a fresh transaction, so
// stock checks always see the latest committed values.
func (s *Store) updateWithRetry(fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := range conflictRetries {
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		// Jittered backoff so contending writers stop colliding in lockstep.
		time.Sleep(time.Duration(rand.IntN(1+attempt*250)) * time.Microsecond)
	}
	return err
}

// getDoc reads and unmarshals a document inside an open transaction.
// Returns ErrNotFound if the key does not exist.
func getDoc(txn *badger.Txn, key string, dest any) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get key %s: %w", key, err)
	}

	return item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, dest); err != nil {
			return fmt.Errorf("failed to unmarshal document: %w", err)
		}
		return nil
	})
}

// setDoc marshals and writes a document inside an open transaction.
func setDoc(txn *badger.Txn, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := txn.Set([]byte(key), data); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}
