package repositories

import (
	"sort"

	"blogicum/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerLocationRepository implements LocationRepository using BadgerDB
type BadgerLocationRepository struct {
	db *badger.DB
}

// NewBadgerLocationRepository creates a new BadgerLocationRepository
func NewBadgerLocationRepository(db *badger.DB) *BadgerLocationRepository {
	return &BadgerLocationRepository{db: db}
}

// Create creates a new location
func (r *BadgerLocationRepository) Create(location *models.Location) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, LocationSeqKey)
		if err != nil {
			return err
		}
		location.ID = id
		return putEntity(txn, entityKey(LocationKeyPrefix, id), location)
	})
}

// GetByID retrieves a location by ID
func (r *BadgerLocationRepository) GetByID(id int) (*models.Location, error) {
	var location *models.Location
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		location, err = getEntity[models.Location](txn, entityKey(LocationKeyPrefix, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return location, nil
}

// List retrieves all locations ordered by name
func (r *BadgerLocationRepository) List() ([]*models.Location, error) {
	var locations []*models.Location
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		locations, err = scanEntities[models.Location](txn, []byte(LocationKeyPrefix), nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(locations, func(i, j int) bool {
		return locations[i].Name < locations[j].Name
	})
	return locations, nil
}

// Update updates an existing location
func (r *BadgerLocationRepository) Update(location *models.Location) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(LocationKeyPrefix, location.ID)
		if err := requireKey(txn, key); err != nil {
			return err
		}
		return putEntity(txn, key, location)
	})
}

// Delete deletes a location by ID
func (r *BadgerLocationRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(LocationKeyPrefix, id)
		if err := requireKey(txn, key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
