package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"blogicum/app/auth"
	"blogicum/app/middleware"
	"blogicum/app/repositories"
	"blogicum/app/services"
	"blogicum/app/views"

	"github.com/gorilla/mux"
)

// responder holds the helpers shared by every controller for consistent
// response handling.
type responder struct {
	views *views.Renderer
}

func (c *responder) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func (c *responder) sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if middleware.IsAPI(r) {
		c.sendJSON(w, status, map[string]string{"error": message})
		return
	}

	page := fmt.Sprintf("errors/%d", status)
	if c.views == nil || !c.views.Has(page) {
		http.Error(w, message, status)
		return
	}
	data := c.data(r, http.StatusText(status))
	if err := c.views.Render(w, status, page, data); err != nil {
		log.Printf("failed to render %s: %v", page, err)
		http.Error(w, message, status)
	}
}

// render writes an HTML page, falling back to the 500 page on template
// errors.
func (c *responder) render(w http.ResponseWriter, r *http.Request, status int, page string, data *views.Data) {
	if err := c.views.Render(w, status, page, data); err != nil {
		log.Printf("failed to render %s: %v", page, err)
		c.sendError(w, r, "Template error", http.StatusInternalServerError)
	}
}

func (c *responder) data(r *http.Request, title string) *views.Data {
	return &views.Data{
		Title:       title,
		Path:        r.URL.Path,
		CurrentUser: auth.UserFrom(r.Context()),
	}
}

// handleError maps service errors to responses.
func (c *responder) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, repositories.ErrNotFound):
		c.sendError(w, r, "Not found", http.StatusNotFound)
	case errors.Is(err, services.ErrForbidden):
		c.sendError(w, r, "Forbidden", http.StatusForbidden)
	case errors.Is(err, services.ErrInvalid):
		c.sendError(w, r, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repositories.ErrConflict):
		c.sendError(w, r, "Already exists", http.StatusConflict)
	case errors.Is(err, services.ErrInvalidCredentials):
		c.sendError(w, r, err.Error(), http.StatusUnauthorized)
	default:
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		c.sendError(w, r, "Internal Server Error", http.StatusInternalServerError)
	}
}

// formError turns a form submission error into a message for the user,
// or "" when the error is not the user's fault.
func formError(err error) string {
	switch {
	case errors.Is(err, services.ErrInvalid):
		return err.Error()
	case errors.Is(err, repositories.ErrConflict):
		return "A record with this name already exists."
	case errors.Is(err, services.ErrInvalidCredentials):
		return "Please enter a correct username and password."
	}
	return ""
}

func pathID(r *http.Request, key string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[key])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return id, nil
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
