package controllers

import (
	"net/http"

	"blogicum/app/views"
)

// PagesController serves the static pages and the error pages
type PagesController struct {
	responder
}

// NewPagesController creates a new PagesController
func NewPagesController(renderer *views.Renderer) *PagesController {
	return &PagesController{responder: responder{views: renderer}}
}

func (pc *PagesController) About(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, http.StatusOK, "pages/about", pc.data(r, "About"))
}

func (pc *PagesController) Rules(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, http.StatusOK, "pages/rules", pc.data(r, "Rules"))
}

// NotFound is used for unmatched routes.
func (pc *PagesController) NotFound(w http.ResponseWriter, r *http.Request) {
	pc.sendError(w, r, "Not found", http.StatusNotFound)
}

// MethodNotAllowed is used when a route exists for another method.
func (pc *PagesController) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	pc.sendError(w, r, "Method not allowed", http.StatusMethodNotAllowed)
}
