package repositories

import (
	"blogicum/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post
func (r *BadgerPostRepository) Create(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id
		return putEntity(txn, entityKey(PostKeyPrefix, post.ID), post.Detach())
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id int) (*models.Post, error) {
	var post *models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		post, err = getEntity[models.Post](txn, entityKey(PostKeyPrefix, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// List retrieves every post in key order. Callers sort and paginate.
func (r *BadgerPostRepository) List() ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		posts, err = scanEntities[models.Post](txn, []byte(PostKeyPrefix), nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Update updates an existing post
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(PostKeyPrefix, post.ID)
		if err := requireKey(txn, key); err != nil {
			return err
		}
		return putEntity(txn, key, post.Detach())
	})
}

// Delete deletes a post by ID
func (r *BadgerPostRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(PostKeyPrefix, id)
		if err := requireKey(txn, key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// ClearCategory sets the category of every post in categoryID to none.
func (r *BadgerPostRepository) ClearCategory(categoryID int) error {
	return r.clearReference(func(p *models.Post) bool {
		if p.CategoryID == nil || *p.CategoryID != categoryID {
			return false
		}
		p.CategoryID = nil
		return true
	})
}

// ClearLocation sets the location of every post at locationID to none.
func (r *BadgerPostRepository) ClearLocation(locationID int) error {
	return r.clearReference(func(p *models.Post) bool {
		if p.LocationID == nil || *p.LocationID != locationID {
			return false
		}
		p.LocationID = nil
		return true
	})
}

func (r *BadgerPostRepository) clearReference(clear func(*models.Post) bool) error {
	return r.db.Update(func(txn *badger.Txn) error {
		changed, err := scanEntities(txn, []byte(PostKeyPrefix), clear)
		if err != nil {
			return err
		}
		for _, post := range changed {
			if err := putEntity(txn, entityKey(PostKeyPrefix, post.ID), post); err != nil {
				return err
			}
		}
		return nil
	})
}
