package repositories

import (
	"fmt"
	"sort"

	"blogicum/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB.
// Comments are keyed by post so a post's thread is a single prefix scan.
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

func commentKey(postID, id int) []byte {
	return []byte(fmt.Sprintf("%s%d:%d", CommentKeyPrefix, postID, id))
}

func commentPostPrefix(postID int) []byte {
	return []byte(fmt.Sprintf("%s%d:", CommentKeyPrefix, postID))
}

// Create creates a new comment
func (r *BadgerCommentRepository) Create(comment *models.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, CommentSeqKey)
		if err != nil {
			return err
		}
		comment.ID = id
		return putEntity(txn, commentKey(comment.PostID, comment.ID), detachComment(comment))
	})
}

// GetByID retrieves a comment belonging to postID
func (r *BadgerCommentRepository) GetByID(postID, id int) (*models.Comment, error) {
	var comment *models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		comment, err = getEntity[models.Comment](txn, commentKey(postID, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByPost retrieves all comments for a post, oldest first
func (r *BadgerCommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		comments, err = scanEntities[models.Comment](txn, commentPostPrefix(postID), nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	SortComments(comments)
	return comments, nil
}

// ListByAuthor retrieves every comment written by authorID
func (r *BadgerCommentRepository) ListByAuthor(authorID int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		comments, err = scanEntities(txn, []byte(CommentKeyPrefix), func(c *models.Comment) bool {
			return c.AuthorID == authorID
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	SortComments(comments)
	return comments, nil
}

// CountByPost counts a post's comments without decoding them
func (r *BadgerCommentRepository) CountByPost(postID int) (int, error) {
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := commentPostPrefix(postID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Update updates an existing comment
func (r *BadgerCommentRepository) Update(comment *models.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := commentKey(comment.PostID, comment.ID)
		if err := requireKey(txn, key); err != nil {
			return err
		}
		return putEntity(txn, key, detachComment(comment))
	})
}

// Delete deletes a comment belonging to postID
func (r *BadgerCommentRepository) Delete(postID, id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := commentKey(postID, id)
		if err := requireKey(txn, key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// DeleteByPost removes a post's whole thread
func (r *BadgerCommentRepository) DeleteByPost(postID int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)

		var keys [][]byte
		prefix := commentPostPrefix(postID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// SortComments orders comments by creation time, oldest first.
func SortComments(comments []*models.Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
}

func detachComment(c *models.Comment) *models.Comment {
	stored := *c
	stored.Author = nil
	stored.Post = nil
	return &stored
}
