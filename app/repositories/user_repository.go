package repositories

import (
	"blogicum/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

func usernameKey(username string) []byte {
	return []byte(UsernamePrefix + username)
}

// Create creates a new user, failing with ErrConflict on a taken username
func (r *BadgerUserRepository) Create(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, UserSeqKey)
		if err != nil {
			return err
		}
		if err := claimIndex(txn, usernameKey(user.Username), id); err != nil {
			return err
		}
		user.ID = id
		return putEntity(txn, entityKey(UserKeyPrefix, id), user)
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id int) (*models.User, error) {
	var user *models.User
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		user, err = getEntity[models.User](txn, entityKey(UserKeyPrefix, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByUsername retrieves a user by username
func (r *BadgerUserRepository) GetByUsername(username string) (*models.User, error) {
	var user *models.User
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupIndex(txn, usernameKey(username))
		if err != nil {
			return err
		}
		user, err = getEntity[models.User](txn, entityKey(UserKeyPrefix, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update updates an existing user, moving the username index on rename
func (r *BadgerUserRepository) Update(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(UserKeyPrefix, user.ID)
		existing, err := getEntity[models.User](txn, key)
		if err != nil {
			return err
		}
		if existing.Username != user.Username {
			if err := claimIndex(txn, usernameKey(user.Username), user.ID); err != nil {
				return err
			}
			if err := txn.Delete(usernameKey(existing.Username)); err != nil {
				return err
			}
		}
		return putEntity(txn, key, user)
	})
}

// Delete deletes a user and frees the username
func (r *BadgerUserRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(UserKeyPrefix, id)
		existing, err := getEntity[models.User](txn, key)
		if err != nil {
			return err
		}
		if err := txn.Delete(usernameKey(existing.Username)); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
