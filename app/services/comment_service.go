package services

import (
	"fmt"

	"blogicum/app/models"
	"blogicum/app/policy"
)

// CommentService handles business logic for comments
type CommentService struct {
	repos Repositories
	now   Clock
}

// NewCommentService creates a new CommentService
func NewCommentService(repos Repositories, now Clock) *CommentService {
	return &CommentService{repos: repos, now: now}
}

// ListPostComments returns the comments of a post the viewer may see,
// oldest first.
func (s *CommentService) ListPostComments(postID, viewerID int) ([]*models.Comment, error) {
	if _, err := s.visiblePost(postID, viewerID); err != nil {
		return nil, err
	}

	comments, err := s.repos.Comments.ListByPost(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	if err := newHydrator(s.repos).attachAuthors(comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment adds a comment by author to a post the author may see.
func (s *CommentService) CreateComment(author *models.User, postID int, text string) (*models.Comment, error) {
	if author == nil {
		return nil, ErrForbidden
	}
	post, err := s.visiblePost(postID, author.ID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		AuthorID:  author.ID,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}
	if err := comment.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := s.repos.Comments.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	comment.Author = author
	return comment, nil
}

// GetOwnComment returns a comment for editing. Comments that do not
// exist, belong to another post or were written by someone else are all
// reported as ErrNotFound.
func (s *CommentService) GetOwnComment(actor *models.User, postID, id int) (*models.Comment, error) {
	comment, err := s.repos.Comments.GetByID(postID, id)
	if err != nil {
		return nil, lookupErr("comment", err)
	}
	if !policy.CanEdit(actor, comment) {
		return nil, fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}
	comment.Author = actor
	return comment, nil
}

// UpdateComment replaces the text of the actor's own comment. The
// creation time never changes.
func (s *CommentService) UpdateComment(actor *models.User, postID, id int, text string) (*models.Comment, error) {
	comment, err := s.GetOwnComment(actor, postID, id)
	if err != nil {
		return nil, err
	}

	comment.Text = text
	if err := comment.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := s.repos.Comments.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

// DeleteComment removes the actor's own comment.
func (s *CommentService) DeleteComment(actor *models.User, postID, id int) error {
	if _, err := s.GetOwnComment(actor, postID, id); err != nil {
		return err
	}
	if err := s.repos.Comments.Delete(postID, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (s *CommentService) visiblePost(postID, viewerID int) (*models.Post, error) {
	post, err := s.repos.Posts.GetByID(postID)
	if err != nil {
		return nil, lookupErr("post", err)
	}
	if err := newHydrator(s.repos).attach(post); err != nil {
		return nil, err
	}
	if !policy.CanView(post, viewerID, s.now()) {
		return nil, fmt.Errorf("post %d: %w", postID, ErrNotFound)
	}
	return post, nil
}
