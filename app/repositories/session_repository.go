package repositories

import (
	"time"

	"blogicum/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerSessionRepository stores sessions as entries that Badger expires on
// its own once their TTL passes.
type BadgerSessionRepository struct {
	db *badger.DB
}

// NewBadgerSessionRepository creates a new BadgerSessionRepository
func NewBadgerSessionRepository(db *badger.DB) *BadgerSessionRepository {
	return &BadgerSessionRepository{db: db}
}

func sessionKey(token string) []byte {
	return []byte(SessionKeyPrefix + token)
}

// Create stores a session for ttl
func (r *BadgerSessionRepository) Create(session *models.Session, ttl time.Duration) error {
	data, err := marshalEntity(session)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(sessionKey(session.Token), data).WithTTL(ttl))
	})
}

// Get retrieves a live session by token
func (r *BadgerSessionRepository) Get(token string) (*models.Session, error) {
	var session *models.Session
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		session, err = getEntity[models.Session](txn, sessionKey(token))
		return err
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Delete removes a session; deleting an unknown token is not an error
func (r *BadgerSessionRepository) Delete(token string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey(token))
	})
}
