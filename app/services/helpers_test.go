package services

import (
	"testing"
	"time"

	"blogicum/app/models"
	"blogicum/app/repositories/mock"

	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

// fakeClock is a movable clock for scheduled-post tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	repos    Repositories
	clock    *fakeClock
	posts    *PostService
	comments *CommentService
	catalog  *CatalogService
	users    *UserService
	sessions *SessionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := Repositories{
		Posts:      mock.NewPostRepository(),
		Comments:   mock.NewCommentRepository(),
		Categories: mock.NewCategoryRepository(),
		Locations:  mock.NewLocationRepository(),
		Users:      mock.NewUserRepository(),
		Sessions:   mock.NewSessionRepository(),
	}
	clock := &fakeClock{now: baseTime}
	return &fixture{
		repos:    repos,
		clock:    clock,
		posts:    NewPostService(repos, clock.Now),
		comments: NewCommentService(repos, clock.Now),
		catalog:  NewCatalogService(repos, clock.Now),
		users:    NewUserService(repos, clock.Now),
		sessions: NewSessionService(repos, time.Hour, clock.Now),
	}
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, CreatedAt: baseTime}
	require.NoError(t, f.repos.Users.Create(user))
	return user
}

func (f *fixture) staff(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, IsStaff: true, CreatedAt: baseTime}
	require.NoError(t, f.repos.Users.Create(user))
	return user
}

func (f *fixture) category(t *testing.T, slug string, published bool) *models.Category {
	t.Helper()
	category := &models.Category{Title: slug, Description: "about " + slug, Slug: slug, IsPublished: published}
	require.NoError(t, f.repos.Categories.Create(category))
	return category
}

// post stores a post directly, bypassing the service, so tests control
// every field.
func (f *fixture) post(t *testing.T, author *models.User, title string, mutate ...func(*models.Post)) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       title,
		Text:        "text of " + title,
		PubDate:     baseTime.Add(-time.Hour),
		IsPublished: true,
		AuthorID:    author.ID,
		CreatedAt:   baseTime.Add(-time.Hour),
	}
	for _, m := range mutate {
		m(post)
	}
	require.NoError(t, f.repos.Posts.Create(post))
	return post
}

func inCategory(c *models.Category) func(*models.Post) {
	return func(p *models.Post) { p.SetCategory(c) }
}

func unpublished(p *models.Post) { p.IsPublished = false }

func publishedAt(at time.Time) func(*models.Post) {
	return func(p *models.Post) { p.PubDate = at }
}
