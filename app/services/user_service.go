package services

import (
	"errors"
	"fmt"
	"strings"

	"blogicum/app/models"
	"blogicum/app/repositories"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Registration is the sign-up form.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	// Confirm must repeat Password when set.
	Confirm string `json:"password_confirm,omitempty" validate:"omitempty,eqfield=Password"`
}

// ProfileUpdate holds the fields a user may change on their profile.
type ProfileUpdate struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserService handles registration, authentication and profiles.
type UserService struct {
	repos Repositories
	now   Clock
	cost  int
}

// NewUserService creates a new UserService
func NewUserService(repos Repositories, now Clock) *UserService {
	return &UserService{repos: repos, now: now, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *UserService) WithHashCost(cost int) *UserService {
	s.cost = cost
	return s
}

// Register creates a user account.
func (s *UserService) Register(form Registration) (*models.User, error) {
	if err := validate.Struct(form); err != nil {
		return nil, invalid(err)
	}

	user := &models.User{
		Username:  strings.TrimSpace(form.Username),
		Email:     form.Email,
		FirstName: strings.TrimSpace(form.FirstName),
		LastName:  strings.TrimSpace(form.LastName),
		CreatedAt: s.now(),
	}
	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return nil, invalid(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.repos.Users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", user.Username, err)
	}
	return user, nil
}

// SignUp registers a user from the public sign-up form, which must repeat
// the password.
func (s *UserService) SignUp(form Registration) (*models.User, error) {
	if err := validate.Var(form.Confirm, "required"); err != nil {
		return nil, invalid(fmt.Errorf("password confirmation: %w", err))
	}
	return s.Register(form)
}

// CreateAdmin registers a staff user.
func (s *UserService) CreateAdmin(form Registration) (*models.User, error) {
	user, err := s.Register(form)
	if err != nil {
		return nil, err
	}
	user.IsStaff = true
	if err := s.repos.Users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to promote user: %w", err)
	}
	return user, nil
}

// Authenticate checks a username and password pair.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.repos.Users.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(id int) (*models.User, error) {
	user, err := s.repos.Users.GetByID(id)
	if err != nil {
		return nil, lookupErr("user", err)
	}
	return user, nil
}

// GetByUsername returns a user by username.
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	user, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, lookupErr("user", err)
	}
	return user, nil
}

// UpdateProfile changes the actor's own profile fields.
func (s *UserService) UpdateProfile(actor *models.User, changes ProfileUpdate) (*models.User, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	user, err := s.repos.Users.GetByID(actor.ID)
	if err != nil {
		return nil, lookupErr("user", err)
	}

	user.Username = strings.TrimSpace(changes.Username)
	user.Email = strings.TrimSpace(strings.ToLower(changes.Email))
	user.FirstName = strings.TrimSpace(changes.FirstName)
	user.LastName = strings.TrimSpace(changes.LastName)
	if err := user.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := s.repos.Users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a user with their posts and comments. Users may
// delete themselves; staff may delete anyone.
func (s *UserService) DeleteUser(actor *models.User, id int) error {
	if actor == nil || (actor.ID != id && !actor.IsStaff) {
		return ErrForbidden
	}
	if _, err := s.repos.Users.GetByID(id); err != nil {
		return lookupErr("user", err)
	}

	posts, err := s.repos.Posts.List()
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}
	for _, post := range posts {
		if post.AuthorID != id {
			continue
		}
		if err := s.repos.Comments.DeleteByPost(post.ID); err != nil {
			return fmt.Errorf("failed to delete comments of post %d: %w", post.ID, err)
		}
		if err := s.repos.Posts.Delete(post.ID); err != nil {
			return fmt.Errorf("failed to delete post %d: %w", post.ID, err)
		}
	}

	comments, err := s.repos.Comments.ListByAuthor(id)
	if err != nil {
		return fmt.Errorf("failed to list comments: %w", err)
	}
	for _, comment := range comments {
		if err := s.repos.Comments.Delete(comment.PostID, comment.ID); err != nil {
			return fmt.Errorf("failed to delete comment %d: %w", comment.ID, err)
		}
	}

	return s.repos.Users.Delete(id)
}
