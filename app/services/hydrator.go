package services

import (
	"errors"
	"fmt"

	"blogicum/app/models"
	"blogicum/app/repositories"
)

// hydrator attaches authors, categories and locations to posts, loading
// each referenced record once per request.
type hydrator struct {
	repos      Repositories
	users      map[int]*models.User
	categories map[int]*models.Category
	locations  map[int]*models.Location
}

func newHydrator(repos Repositories) *hydrator {
	return &hydrator{
		repos:      repos,
		users:      make(map[int]*models.User),
		categories: make(map[int]*models.Category),
		locations:  make(map[int]*models.Location),
	}
}

// attach fills the associations of post. A reference to a deleted
// category or location is dropped, the same as the set-null applied on
// delete.
func (h *hydrator) attach(post *models.Post) error {
	author, err := h.user(post.AuthorID)
	if err != nil {
		return err
	}
	post.Author = author

	if post.CategoryID != nil {
		category, err := h.category(*post.CategoryID)
		if err != nil {
			return err
		}
		post.Category = category
		if category == nil {
			post.CategoryID = nil
		}
	}
	if post.LocationID != nil {
		location, err := h.location(*post.LocationID)
		if err != nil {
			return err
		}
		post.Location = location
		if location == nil {
			post.LocationID = nil
		}
	}
	return nil
}

// attachAuthors fills the author of each comment.
func (h *hydrator) attachAuthors(comments []*models.Comment) error {
	for _, comment := range comments {
		author, err := h.user(comment.AuthorID)
		if err != nil {
			return err
		}
		comment.Author = author
	}
	return nil
}

// user returns nil for a user that no longer exists.
func (h *hydrator) user(id int) (*models.User, error) {
	if user, ok := h.users[id]; ok {
		return user, nil
	}
	user, err := h.repos.Users.GetByID(id)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	h.users[id] = user
	return user, nil
}

func (h *hydrator) category(id int) (*models.Category, error) {
	if category, ok := h.categories[id]; ok {
		return category, nil
	}
	category, err := h.repos.Categories.GetByID(id)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	h.categories[id] = category
	return category, nil
}

func (h *hydrator) location(id int) (*models.Location, error) {
	if location, ok := h.locations[id]; ok {
		return location, nil
	}
	location, err := h.repos.Locations.GetByID(id)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to get location %d: %w", id, err)
	}
	h.locations[id] = location
	return location, nil
}
