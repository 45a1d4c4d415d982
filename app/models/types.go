package models

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// MaxCharFieldLength bounds titles and names.
const MaxCharFieldLength = 256

var (
	slugPattern     = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

// Post represents a blog publication.
type Post struct {
	ID          int       `json:"id" validate:"gte=0"`
	Title       string    `json:"title" validate:"required,max=256"`
	Text        string    `json:"text" validate:"required"`
	PubDate     time.Time `json:"pub_date" validate:"required"`
	Image       string    `json:"image,omitempty" validate:"omitempty,max=512"`
	IsPublished bool      `json:"is_published"`
	AuthorID    int       `json:"author_id" validate:"required,gt=0"`
	LocationID  *int      `json:"location_id,omitempty" validate:"omitempty,gt=0"`
	CategoryID  *int      `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	CreatedAt   time.Time `json:"created_at"`

	// Populated by services, never persisted.
	Author       *User      `json:"author,omitempty" validate:"-"`
	Category     *Category  `json:"category,omitempty" validate:"-"`
	Location     *Location  `json:"location,omitempty" validate:"-"`
	Comments     []*Comment `json:"comments,omitempty" validate:"-"`
	CommentCount int        `json:"comment_count" validate:"-"`
}

// Comment represents a comment on a blog post.
type Comment struct {
	ID        int       `json:"id" validate:"gte=0"`
	PostID    int       `json:"post_id" validate:"required,gt=0"`
	AuthorID  int       `json:"author_id" validate:"required,gt=0"`
	Text      string    `json:"text" validate:"required,max=2000"`
	CreatedAt time.Time `json:"created_at"`

	Author *User `json:"author,omitempty" validate:"-"`
	Post   *Post `json:"-" validate:"-"`
}

// Category is a thematic grouping for posts.
type Category struct {
	ID          int       `json:"id" validate:"gte=0"`
	Title       string    `json:"title" validate:"required,max=256"`
	Description string    `json:"description" validate:"required"`
	Slug        string    `json:"slug" validate:"required,max=64,slug"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

// Location is a geographic tag for posts.
type Location struct {
	ID          int       `json:"id" validate:"gte=0"`
	Name        string    `json:"name" validate:"required,max=256"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

// User is a registered author or commenter.
type User struct {
	ID           int       `json:"id" validate:"gte=0"`
	Username     string    `json:"username" validate:"required,max=150,username"`
	FirstName    string    `json:"first_name" validate:"max=150"`
	LastName     string    `json:"last_name" validate:"max=150"`
	Email        string    `json:"email" validate:"omitempty,email"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"is_staff"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session binds an opaque browser token to a user.
type Session struct {
	Token     string    `json:"token"`
	UserID    int       `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
