package services

import (
	"errors"
	"fmt"

	"blogicum/app/models"
	"blogicum/app/policy"
	"blogicum/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	repos Repositories
	now   Clock
}

// NewPostService creates a new PostService
func NewPostService(repos Repositories, now Clock) *PostService {
	return &PostService{repos: repos, now: now}
}

// CreatePost stores a new post written by author.
func (s *PostService) CreatePost(author *models.User, post *models.Post) error {
	if author == nil {
		return ErrForbidden
	}

	post.ID = 0
	post.AuthorID = author.ID
	post.CreatedAt = s.now()
	post.BeforeCreate()

	if err := s.checkReferences(post); err != nil {
		return err
	}
	if err := post.Validate(); err != nil {
		return invalid(err)
	}

	if err := s.repos.Posts.Create(post); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	post.Author = author
	return nil
}

// GetPost returns the post with its comments if viewerID may see it.
// Posts the viewer may not see are reported as ErrNotFound.
func (s *PostService) GetPost(id, viewerID int) (*models.Post, error) {
	post, err := s.repos.Posts.GetByID(id)
	if err != nil {
		return nil, lookupErr("post", err)
	}
	h := newHydrator(s.repos)
	if err := s.hydrate(h, post); err != nil {
		return nil, err
	}
	if !policy.CanView(post, viewerID, s.now()) {
		return nil, fmt.Errorf("post %d: %w", id, ErrNotFound)
	}

	comments, err := s.repos.Comments.ListByPost(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	if err := h.attachAuthors(comments); err != nil {
		return nil, err
	}
	for _, comment := range comments {
		if err := post.AddComment(comment); err != nil {
			return nil, err
		}
	}
	return post, nil
}

// GetPostForEdit returns the post if actor is its author. Anyone else
// gets ErrForbidden.
func (s *PostService) GetPostForEdit(actor *models.User, id int) (*models.Post, error) {
	post, err := s.repos.Posts.GetByID(id)
	if err != nil {
		return nil, lookupErr("post", err)
	}
	if !policy.CanEdit(actor, post) {
		return nil, fmt.Errorf("post %d: %w", id, ErrForbidden)
	}
	if err := s.hydrate(newHydrator(s.repos), post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPostForDelete returns the post if actor may delete it.
func (s *PostService) GetPostForDelete(actor *models.User, id int) (*models.Post, error) {
	post, err := s.repos.Posts.GetByID(id)
	if err != nil {
		return nil, lookupErr("post", err)
	}
	if !policy.CanDeletePost(actor, post) {
		return nil, fmt.Errorf("post %d: %w", id, ErrForbidden)
	}
	if err := s.hydrate(newHydrator(s.repos), post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost applies the editable fields of changes to post id. Only the
// author may do so; the post is left untouched otherwise.
func (s *PostService) UpdatePost(actor *models.User, id int, changes *models.Post) (*models.Post, error) {
	post, err := s.repos.Posts.GetByID(id)
	if err != nil {
		return nil, lookupErr("post", err)
	}
	if !policy.CanEdit(actor, post) {
		return nil, fmt.Errorf("post %d: %w", id, ErrForbidden)
	}

	post.Title = changes.Title
	post.Text = changes.Text
	post.Image = changes.Image
	post.IsPublished = changes.IsPublished
	post.CategoryID = changes.CategoryID
	post.LocationID = changes.LocationID
	if !changes.PubDate.IsZero() {
		post.PubDate = changes.PubDate
	}

	if err := s.checkReferences(post); err != nil {
		return nil, err
	}
	if err := post.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := s.repos.Posts.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// DeletePost removes the post and its comments. The author and staff may
// delete a post.
func (s *PostService) DeletePost(actor *models.User, id int) error {
	post, err := s.repos.Posts.GetByID(id)
	if err != nil {
		return lookupErr("post", err)
	}
	if !policy.CanDeletePost(actor, post) {
		return fmt.Errorf("post %d: %w", id, ErrForbidden)
	}
	return s.deletePost(id)
}

func (s *PostService) deletePost(id int) error {
	if err := s.repos.Comments.DeleteByPost(id); err != nil {
		return fmt.Errorf("failed to delete comments of post %d: %w", id, err)
	}
	if err := s.repos.Posts.Delete(id); err != nil {
		return fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	return nil
}

// checkReferences makes sure the category and location a post points at
// exist.
func (s *PostService) checkReferences(post *models.Post) error {
	if post.CategoryID != nil {
		if _, err := s.repos.Categories.GetByID(*post.CategoryID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return invalid(fmt.Errorf("category %d does not exist", *post.CategoryID))
			}
			return err
		}
	}
	if post.LocationID != nil {
		if _, err := s.repos.Locations.GetByID(*post.LocationID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return invalid(fmt.Errorf("location %d does not exist", *post.LocationID))
			}
			return err
		}
	}
	return nil
}

func (s *PostService) hydrate(h *hydrator, posts ...*models.Post) error {
	for _, post := range posts {
		if err := h.attach(post); err != nil {
			return err
		}
	}
	return nil
}
