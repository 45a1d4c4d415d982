package controllers

import (
	"net/http"

	"blogicum/app/auth"
	"blogicum/app/models"
	"blogicum/app/services"
)

// AdminController exposes staff-only management of categories, locations
// and users as JSON.
type AdminController struct {
	responder
	catalog *services.CatalogService
	users   *services.UserService
}

// NewAdminController creates a new AdminController
func NewAdminController(catalog *services.CatalogService, users *services.UserService) *AdminController {
	return &AdminController{catalog: catalog, users: users}
}

// ListCategories returns every category, published or not
func (ac *AdminController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := ac.catalog.ListCategories()
	if err != nil {
		ac.handleError(w, r, err)
		return
	}
	ac.sendJSON(w, http.StatusOK, categories)
}

// CreateCategory adds a category
func (ac *AdminController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := decodeJSON(r, &category); err != nil {
		ac.sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}
	if err := ac.catalog.CreateCategory(auth.UserFrom(r.Context()), &category); err != nil {
		ac.handleError(w, r, err)
		return
	}
	ac.sendJSON(w, http.StatusCreated, category)
}

// UpdateCategory replaces a category
func (ac *AdminController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ac.sendError(w, r, "Invalid category ID", http.StatusBadRequest)
		return
	}
	var changes models.Category
	if err := decodeJSON(r, &changes); err != nil {
		ac.sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}
	category, err := ac.catalog.UpdateCategory(auth.UserFrom(r.Context()), id, &changes)
	if err != nil {
		ac.handleError(w, r, err)
		return
	}
	ac.sendJSON(w, http.StatusOK, category)
}

// DeleteCategory removes a category; its posts lose the category
func (ac *AdminController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ac.sendError(w, r, "Invalid category ID", http.StatusBadRequest)
		return
	}
	if err := ac.catalog.DeleteCategory(auth.UserFrom(r.Context()), id); err != nil {
		ac.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListLocations returns every location
func (ac *AdminController) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := ac.catalog.ListLocations()
	if err != nil {
		ac.handleError(w, r, err)
		return
	}
	ac.sendJSON(w, http.StatusOK, locations)
}

// CreateLocation adds a location
func (ac *AdminController) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var location models.Location
	if err := decodeJSON(r, &location); err != nil {
		ac.sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}
	if err := ac.catalog.CreateLocation(auth.UserFrom(r.Context()), &location); err != nil {
		ac.handleError(w, r, err)
		return
	}
	ac.sendJSON(w, http.StatusCreated, location)
}

// UpdateLocation replaces a location
func (ac *AdminController) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ac.sendError(w, r, "Invalid location ID", http.StatusBadRequest)
		return
	}
	var changes models.Location
	if err := decodeJSON(r, &changes); err != nil {
		ac.sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}
	location, err := ac.catalog.UpdateLocation(auth.UserFrom(r.Context()), id, &changes)
	if err != nil {
		ac.handleError(w, r, err)
		return
	}
	ac.sendJSON(w, http.StatusOK, location)
}

// DeleteLocation removes a location; its posts lose the location
func (ac *AdminController) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ac.sendError(w, r, "Invalid location ID", http.StatusBadRequest)
		return
	}
	if err := ac.catalog.DeleteLocation(auth.UserFrom(r.Context()), id); err != nil {
		ac.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteUser removes a user together with their posts and comments
func (ac *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		ac.sendError(w, r, "Invalid user ID", http.StatusBadRequest)
		return
	}
	if err := ac.users.DeleteUser(auth.UserFrom(r.Context()), id); err != nil {
		ac.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
