// Package services implements the blog's business rules on top of the
// repositories: who may see a post, who may change it, and how post lists
// are assembled.
package services

import (
	"time"

	"blogicum/app/repositories"
)

// Repositories groups the storage dependencies shared by the services.
type Repositories struct {
	Posts      repositories.PostRepository
	Comments   repositories.CommentRepository
	Categories repositories.CategoryRepository
	Locations  repositories.LocationRepository
	Users      repositories.UserRepository
	Sessions   repositories.SessionRepository
}

// FromStore exposes the Badger repositories of a store.
func FromStore(store *repositories.Store) Repositories {
	return Repositories{
		Posts:      store.Posts,
		Comments:   store.Comments,
		Categories: store.Categories,
		Locations:  store.Locations,
		Users:      store.Users,
		Sessions:   store.Sessions,
	}
}

// Clock returns the current time. Tests substitute a fixed one.
type Clock func() time.Time
