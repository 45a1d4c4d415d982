package policy

import "blogicum/app/models"

// Owned is any resource created by a single user.
type Owned interface {
	OwnerID() int
}

// IsOwner reports whether actorID created the resource.
func IsOwner(actorID int, resource Owned) bool {
	if actorID == Anonymous || resource == nil {
		return false
	}
	return resource.OwnerID() == actorID
}

// CanEdit reports whether actor may change the resource. Only the author may.
func CanEdit(actor *models.User, resource Owned) bool {
	if actor == nil {
		return false
	}
	return IsOwner(actor.ID, resource)
}

// CanDeletePost reports whether actor may delete the post: its author or staff.
func CanDeletePost(actor *models.User, p *models.Post) bool {
	if actor == nil || p == nil {
		return false
	}
	return actor.IsStaff || IsOwner(actor.ID, p)
}
