package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix     = "post:"
	CommentKeyPrefix  = "comment:"
	CategoryKeyPrefix = "category:"
	LocationKeyPrefix = "location:"
	UserKeyPrefix     = "user:"
	SessionKeyPrefix  = "session:"

	// Unique secondary indexes
	CategorySlugPrefix = "category-slug:"
	UsernamePrefix     = "user-name:"

	// Sequence keys for auto-incrementing IDs
	PostSeqKey     = "seq:post"
	CommentSeqKey  = "seq:comment"
	CategorySeqKey = "seq:category"
	LocationSeqKey = "seq:location"
	UserSeqKey     = "seq:user"
)

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	var id int
	item, err := txn.Get([]byte(seqKey))
	if err == badger.ErrKeyNotFound {
		id = 1
	} else if err != nil {
		return 0, err
	} else {
		err = item.Value(func(val []byte) error {
			id = decodeID(val)
			return nil
		})
		if err != nil {
			return 0, err
		}
		id++
	}

	if err := txn.Set([]byte(seqKey), encodeID(id)); err != nil {
		return 0, err
	}

	return id, nil
}

func encodeID(id int) []byte {
	return []byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
}

func decodeID(val []byte) int {
	if len(val) < 4 {
		return 0
	}
	return int(val[0])<<24 | int(val[1])<<16 | int(val[2])<<8 | int(val[3])
}

func entityKey(prefix string, id int) []byte {
	return []byte(fmt.Sprintf("%s%d", prefix, id))
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}

// getEntity loads the value stored at key into a new T.
func getEntity[T any](txn *badger.Txn, key []byte) (*T, error) {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var entity T
	if err := item.Value(func(val []byte) error {
		return unmarshalEntity(val, &entity)
	}); err != nil {
		return nil, err
	}
	return &entity, nil
}

// putEntity marshals entity and stores it at key.
func putEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	data, err := marshalEntity(entity)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

// scanEntities decodes every value under prefix, keeping those accepted by
// keep (all of them when keep is nil).
func scanEntities[T any](txn *badger.Txn, prefix []byte, keep func(*T) bool) ([]*T, error) {
	var entities []*T

	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var entity T
		err := it.Item().Value(func(val []byte) error {
			return unmarshalEntity(val, &entity)
		})
		if err != nil {
			return nil, err
		}
		if keep == nil || keep(&entity) {
			entities = append(entities, &entity)
		}
	}
	return entities, nil
}

// requireKey returns ErrNotFound when key is absent.
func requireKey(txn *badger.Txn, key []byte) error {
	_, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	return err
}

// claimIndex points a unique index key at id, failing with ErrConflict when
// another id already holds it.
func claimIndex(txn *badger.Txn, key []byte, id int) error {
	item, err := txn.Get(key)
	switch {
	case err == badger.ErrKeyNotFound:
		return txn.Set(key, encodeID(id))
	case err != nil:
		return err
	}

	var owner int
	if err := item.Value(func(val []byte) error {
		owner = decodeID(val)
		return nil
	}); err != nil {
		return err
	}
	if owner != id {
		return ErrConflict
	}
	return nil
}

// lookupIndex resolves a unique index key to the id it points at.
func lookupIndex(txn *badger.Txn, key []byte) (int, error) {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	var id int
	err = item.Value(func(val []byte) error {
		id = decodeID(val)
		return nil
	})
	return id, err
}
