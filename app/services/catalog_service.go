package services

import (
	"fmt"

	"blogicum/app/models"
)

// CatalogService manages categories and locations. Every change requires
// a staff user.
type CatalogService struct {
	repos Repositories
	now   Clock
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(repos Repositories, now Clock) *CatalogService {
	return &CatalogService{repos: repos, now: now}
}

func requireStaff(actor *models.User) error {
	if actor == nil || !actor.IsStaff {
		return fmt.Errorf("staff only: %w", ErrForbidden)
	}
	return nil
}

// ListCategories returns every category.
func (s *CatalogService) ListCategories() ([]*models.Category, error) {
	return s.repos.Categories.List()
}

// PublishedCategories returns the categories offered in post forms.
func (s *CatalogService) PublishedCategories() ([]*models.Category, error) {
	all, err := s.repos.Categories.List()
	if err != nil {
		return nil, err
	}
	published := make([]*models.Category, 0, len(all))
	for _, category := range all {
		if category.IsPublished {
			published = append(published, category)
		}
	}
	return published, nil
}

// CreateCategory adds a category.
func (s *CatalogService) CreateCategory(actor *models.User, category *models.Category) error {
	if err := requireStaff(actor); err != nil {
		return err
	}
	category.ID = 0
	category.CreatedAt = s.now()
	category.BeforeCreate()
	if err := category.Validate(); err != nil {
		return invalid(err)
	}
	if err := s.repos.Categories.Create(category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// UpdateCategory replaces the editable fields of category id.
func (s *CatalogService) UpdateCategory(actor *models.User, id int, changes *models.Category) (*models.Category, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	category, err := s.repos.Categories.GetByID(id)
	if err != nil {
		return nil, lookupErr("category", err)
	}

	category.Title = changes.Title
	category.Description = changes.Description
	category.Slug = changes.Slug
	category.IsPublished = changes.IsPublished
	if err := category.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := s.repos.Categories.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category. Its posts stay, without a category.
func (s *CatalogService) DeleteCategory(actor *models.User, id int) error {
	if err := requireStaff(actor); err != nil {
		return err
	}
	if _, err := s.repos.Categories.GetByID(id); err != nil {
		return lookupErr("category", err)
	}
	if err := s.repos.Posts.ClearCategory(id); err != nil {
		return fmt.Errorf("failed to detach posts from category %d: %w", id, err)
	}
	return s.repos.Categories.Delete(id)
}

// ListLocations returns every location.
func (s *CatalogService) ListLocations() ([]*models.Location, error) {
	return s.repos.Locations.List()
}

// PublishedLocations returns the locations offered in post forms.
func (s *CatalogService) PublishedLocations() ([]*models.Location, error) {
	all, err := s.repos.Locations.List()
	if err != nil {
		return nil, err
	}
	published := make([]*models.Location, 0, len(all))
	for _, location := range all {
		if location.IsPublished {
			published = append(published, location)
		}
	}
	return published, nil
}

// CreateLocation adds a location.
func (s *CatalogService) CreateLocation(actor *models.User, location *models.Location) error {
	if err := requireStaff(actor); err != nil {
		return err
	}
	location.ID = 0
	location.CreatedAt = s.now()
	location.BeforeCreate()
	if err := location.Validate(); err != nil {
		return invalid(err)
	}
	if err := s.repos.Locations.Create(location); err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

// UpdateLocation replaces the editable fields of location id.
func (s *CatalogService) UpdateLocation(actor *models.User, id int, changes *models.Location) (*models.Location, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	location, err := s.repos.Locations.GetByID(id)
	if err != nil {
		return nil, lookupErr("location", err)
	}

	location.Name = changes.Name
	location.IsPublished = changes.IsPublished
	if err := location.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := s.repos.Locations.Update(location); err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}
	return location, nil
}

// DeleteLocation removes a location and clears it from its posts.
func (s *CatalogService) DeleteLocation(actor *models.User, id int) error {
	if err := requireStaff(actor); err != nil {
		return err
	}
	if _, err := s.repos.Locations.GetByID(id); err != nil {
		return lookupErr("location", err)
	}
	if err := s.repos.Posts.ClearLocation(id); err != nil {
		return fmt.Errorf("failed to detach posts from location %d: %w", id, err)
	}
	return s.repos.Locations.Delete(id)
}
