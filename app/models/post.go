package models

import (
	"errors"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.PubDate.IsZero() {
		p.PubDate = p.CreatedAt
	}
}

// OwnerID returns the author of the post.
func (p *Post) OwnerID() int {
	return p.AuthorID
}

// SetCategory attaches a category and keeps CategoryID in sync.
func (p *Post) SetCategory(category *Category) {
	p.Category = category
	if category == nil {
		p.CategoryID = nil
		return
	}
	id := category.ID
	p.CategoryID = &id
}

// SetLocation attaches a location and keeps LocationID in sync.
func (p *Post) SetLocation(location *Location) {
	p.Location = location
	if location == nil {
		p.LocationID = nil
		return
	}
	id := location.ID
	p.LocationID = &id
}

// AddComment adds a comment to the post
func (p *Post) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}

	comment.PostID = p.ID
	p.Comments = append(p.Comments, comment)
	p.CommentCount = len(p.Comments)
	return nil
}

// Detach strips the hydrated associations so the post can be persisted.
func (p Post) Detach() *Post {
	p.Author = nil
	p.Category = nil
	p.Location = nil
	p.Comments = nil
	p.CommentCount = 0
	return &p
}
