// Package mock provides in-memory repositories for service and controller
// tests.
package mock

import (
	"sort"
	"sync"
	"time"

	"blogicum/app/models"
	"blogicum/app/repositories"
)

type PostRepository struct {
	posts  map[int]*models.Post
	nextID int
	mutex  sync.RWMutex
}

type CommentRepository struct {
	comments map[int]*models.Comment
	nextID   int
	mutex    sync.RWMutex
}

type CategoryRepository struct {
	categories map[int]*models.Category
	nextID     int
	mutex      sync.RWMutex
}

type LocationRepository struct {
	locations map[int]*models.Location
	nextID    int
	mutex     sync.RWMutex
}

type UserRepository struct {
	users  map[int]*models.User
	nextID int
	mutex  sync.RWMutex
}

type SessionRepository struct {
	sessions map[string]models.Session
	mutex    sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[int]*models.Post), nextID: 1}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[int]*models.Comment), nextID: 1}
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[int]*models.Category), nextID: 1}
}

func NewLocationRepository() *LocationRepository {
	return &LocationRepository{locations: make(map[int]*models.Location), nextID: 1}
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int]*models.User), nextID: 1}
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]models.Session)}
}

// PostRepository implementation
func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post.ID = m.nextID
	m.nextID++
	m.posts[post.ID] = post.Detach()
	return nil
}

func (m *PostRepository) GetByID(id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (m *PostRepository) List() ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := make([]*models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		copied := *post
		posts = append(posts, &copied)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (m *PostRepository) Update(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.posts[post.ID] = post.Detach()
	return nil
}

func (m *PostRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *PostRepository) ClearCategory(categoryID int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, post := range m.posts {
		if post.CategoryID != nil && *post.CategoryID == categoryID {
			post.CategoryID = nil
		}
	}
	return nil
}

func (m *PostRepository) ClearLocation(locationID int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, post := range m.posts {
		if post.LocationID != nil && *post.LocationID == locationID {
			post.LocationID = nil
		}
	}
	return nil
}

// CommentRepository implementation
func (m *CommentRepository) Create(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment.ID = m.nextID
	m.nextID++
	stored := *comment
	stored.Author, stored.Post = nil, nil
	m.comments[comment.ID] = &stored
	return nil
}

func (m *CommentRepository) GetByID(postID, id int) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists || comment.PostID != postID {
		return nil, repositories.ErrNotFound
	}
	copied := *comment
	return &copied, nil
}

func (m *CommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	return m.filter(func(c *models.Comment) bool { return c.PostID == postID }), nil
}

func (m *CommentRepository) ListByAuthor(authorID int) ([]*models.Comment, error) {
	return m.filter(func(c *models.Comment) bool { return c.AuthorID == authorID }), nil
}

func (m *CommentRepository) CountByPost(postID int) (int, error) {
	return len(m.filter(func(c *models.Comment) bool { return c.PostID == postID })), nil
}

func (m *CommentRepository) Update(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	existing, exists := m.comments[comment.ID]
	if !exists || existing.PostID != comment.PostID {
		return repositories.ErrNotFound
	}
	stored := *comment
	stored.Author, stored.Post = nil, nil
	m.comments[comment.ID] = &stored
	return nil
}

func (m *CommentRepository) Delete(postID, id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment, exists := m.comments[id]
	if !exists || comment.PostID != postID {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *CommentRepository) DeleteByPost(postID int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for id, comment := range m.comments {
		if comment.PostID == postID {
			delete(m.comments, id)
		}
	}
	return nil
}

func (m *CommentRepository) filter(keep func(*models.Comment) bool) []*models.Comment {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var comments []*models.Comment
	for _, comment := range m.comments {
		if keep(comment) {
			copied := *comment
			comments = append(comments, &copied)
		}
	}
	repositories.SortComments(comments)
	return comments
}

// CategoryRepository implementation
func (m *CategoryRepository) Create(category *models.Category) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, existing := range m.categories {
		if existing.Slug == category.Slug {
			return repositories.ErrConflict
		}
	}
	category.ID = m.nextID
	m.nextID++
	stored := *category
	m.categories[category.ID] = &stored
	return nil
}

func (m *CategoryRepository) GetByID(id int) (*models.Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	category, exists := m.categories[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *category
	return &copied, nil
}

func (m *CategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, category := range m.categories {
		if category.Slug == slug {
			copied := *category
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *CategoryRepository) List() ([]*models.Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	categories := make([]*models.Category, 0, len(m.categories))
	for _, category := range m.categories {
		copied := *category
		categories = append(categories, &copied)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Title < categories[j].Title })
	return categories, nil
}

func (m *CategoryRepository) Update(category *models.Category) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.categories[category.ID]; !exists {
		return repositories.ErrNotFound
	}
	for id, existing := range m.categories {
		if id != category.ID && existing.Slug == category.Slug {
			return repositories.ErrConflict
		}
	}
	stored := *category
	m.categories[category.ID] = &stored
	return nil
}

func (m *CategoryRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.categories[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

// LocationRepository implementation
func (m *LocationRepository) Create(location *models.Location) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	location.ID = m.nextID
	m.nextID++
	stored := *location
	m.locations[location.ID] = &stored
	return nil
}

func (m *LocationRepository) GetByID(id int) (*models.Location, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	location, exists := m.locations[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *location
	return &copied, nil
}

func (m *LocationRepository) List() ([]*models.Location, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	locations := make([]*models.Location, 0, len(m.locations))
	for _, location := range m.locations {
		copied := *location
		locations = append(locations, &copied)
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i].Name < locations[j].Name })
	return locations, nil
}

func (m *LocationRepository) Update(location *models.Location) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.locations[location.ID]; !exists {
		return repositories.ErrNotFound
	}
	stored := *location
	m.locations[location.ID] = &stored
	return nil
}

func (m *LocationRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.locations[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.locations, id)
	return nil
}

// UserRepository implementation
func (m *UserRepository) Create(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, existing := range m.users {
		if existing.Username == user.Username {
			return repositories.ErrConflict
		}
	}
	user.ID = m.nextID
	m.nextID++
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *UserRepository) GetByID(id int) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *UserRepository) GetByUsername(username string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) Update(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.users[user.ID]; !exists {
		return repositories.ErrNotFound
	}
	for id, existing := range m.users {
		if id != user.ID && existing.Username == user.Username {
			return repositories.ErrConflict
		}
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *UserRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.users[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

// SessionRepository implementation; expiry is checked by the caller.
func (m *SessionRepository) Create(session *models.Session, ttl time.Duration) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	stored := *session
	if stored.ExpiresAt.IsZero() {
		stored.ExpiresAt = time.Now().Add(ttl)
	}
	m.sessions[session.Token] = stored
	return nil
}

func (m *SessionRepository) Get(token string) (*models.Session, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	session, exists := m.sessions[token]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &session, nil
}

func (m *SessionRepository) Delete(token string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.sessions, token)
	return nil
}
