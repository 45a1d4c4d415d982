package repositories

import (
	"fmt"
	"io"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// Store owns the Badger database and the repositories built on it.
type Store struct {
	db    *badger.DB
	mutex sync.Mutex

	Posts      *BadgerPostRepository
	Comments   *BadgerCommentRepository
	Categories *BadgerCategoryRepository
	Locations  *BadgerLocationRepository
	Users      *BadgerUserRepository
	Sessions   *BadgerSessionRepository
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	return open(opts)
}

// OpenInMemory opens a throwaway database, used by tests.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)
	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return NewStore(db), nil
}

// NewStore wires repositories onto an already opened database.
func NewStore(db *badger.DB) *Store {
	return &Store{
		db:         db,
		Posts:      NewBadgerPostRepository(db),
		Comments:   NewBadgerCommentRepository(db),
		Categories: NewBadgerCategoryRepository(db),
		Locations:  NewBadgerLocationRepository(db),
		Users:      NewBadgerUserRepository(db),
		Sessions:   NewBadgerSessionRepository(db),
	}
}

// DB exposes the underlying database.
func (s *Store) DB() *badger.DB {
	return s.db
}

// Backup writes a full backup of the database to w.
func (s *Store) Backup(w io.Writer) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	_, err := s.db.Backup(w, 0)
	return err
}

// Restore loads a backup produced by Backup.
func (s *Store) Restore(r io.Reader) (err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic occurred during restore: %v", rec)
		}
	}()
	return s.db.Load(r, 4)
}

// Clear drops every key.
func (s *Store) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.db.DropAll()
}

// Close closes the database.
func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.db.Close()
}
