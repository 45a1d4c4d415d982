package repositories

import (
	"sort"

	"blogicum/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCategoryRepository implements CategoryRepository using BadgerDB.
// Slugs are kept unique through a slug -> id index key.
type BadgerCategoryRepository struct {
	db *badger.DB
}

// NewBadgerCategoryRepository creates a new BadgerCategoryRepository
func NewBadgerCategoryRepository(db *badger.DB) *BadgerCategoryRepository {
	return &BadgerCategoryRepository{db: db}
}

func slugKey(slug string) []byte {
	return []byte(CategorySlugPrefix + slug)
}

// Create creates a new category, failing with ErrConflict on a taken slug
func (r *BadgerCategoryRepository) Create(category *models.Category) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, CategorySeqKey)
		if err != nil {
			return err
		}
		if err := claimIndex(txn, slugKey(category.Slug), id); err != nil {
			return err
		}
		category.ID = id
		return putEntity(txn, entityKey(CategoryKeyPrefix, id), category)
	})
}

// GetByID retrieves a category by ID
func (r *BadgerCategoryRepository) GetByID(id int) (*models.Category, error) {
	var category *models.Category
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		category, err = getEntity[models.Category](txn, entityKey(CategoryKeyPrefix, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// GetBySlug retrieves a category by its slug
func (r *BadgerCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category *models.Category
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupIndex(txn, slugKey(slug))
		if err != nil {
			return err
		}
		category, err = getEntity[models.Category](txn, entityKey(CategoryKeyPrefix, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// List retrieves all categories ordered by title
func (r *BadgerCategoryRepository) List() ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		categories, err = scanEntities[models.Category](txn, []byte(CategoryKeyPrefix), nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Title < categories[j].Title
	})
	return categories, nil
}

// Update updates an existing category, moving its slug index if needed
func (r *BadgerCategoryRepository) Update(category *models.Category) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(CategoryKeyPrefix, category.ID)
		existing, err := getEntity[models.Category](txn, key)
		if err != nil {
			return err
		}
		if existing.Slug != category.Slug {
			if err := claimIndex(txn, slugKey(category.Slug), category.ID); err != nil {
				return err
			}
			if err := txn.Delete(slugKey(existing.Slug)); err != nil {
				return err
			}
		}
		return putEntity(txn, key, category)
	})
}

// Delete deletes a category and its slug index
func (r *BadgerCategoryRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(CategoryKeyPrefix, id)
		existing, err := getEntity[models.Category](txn, key)
		if err != nil {
			return err
		}
		if err := txn.Delete(slugKey(existing.Slug)); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
