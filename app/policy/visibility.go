// Package policy holds the rules deciding who may see and who may change
// blog content.
package policy

import (
	"time"

	"blogicum/app/models"
)

// Anonymous is the viewer ID of a request without an authenticated user.
const Anonymous = 0

// IsPubliclyVisible reports whether a post may be shown to anyone: it is
// published, its publication time has arrived and its category, when set, is
// published too. The category must already be attached to the post.
func IsPubliclyVisible(p *models.Post, now time.Time) bool {
	if p == nil || !p.IsPublished {
		return false
	}
	if p.PubDate.After(now) {
		return false
	}
	if p.CategoryID != nil && (p.Category == nil || !p.Category.IsPublished) {
		return false
	}
	return true
}

// CanView reports whether viewerID may see the post at now. Authors always
// see their own posts, including unpublished and scheduled ones.
func CanView(p *models.Post, viewerID int, now time.Time) bool {
	if p == nil {
		return false
	}
	if viewerID != Anonymous && p.AuthorID == viewerID {
		return true
	}
	return IsPubliclyVisible(p, now)
}

// FilterVisible keeps the publicly visible posts, preserving order.
func FilterVisible(posts []*models.Post, now time.Time) []*models.Post {
	visible := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		if IsPubliclyVisible(p, now) {
			visible = append(visible, p)
		}
	}
	return visible
}
