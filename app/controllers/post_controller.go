package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"blogicum/app/auth"
	"blogicum/app/middleware"
	"blogicum/app/models"
	"blogicum/app/services"
	"blogicum/app/views"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	responder
	posts   *services.PostService
	catalog *services.CatalogService
}

// NewPostController creates a new PostController
func NewPostController(posts *services.PostService, catalog *services.CatalogService, renderer *views.Renderer) *PostController {
	return &PostController{
		responder: responder{views: renderer},
		posts:     posts,
		catalog:   catalog,
	}
}

// postInput is the JSON body of post create and update requests. On
// update, fields left out of the body keep their stored values.
type postInput struct {
	Title       *string    `json:"title"`
	Text        *string    `json:"text"`
	PubDate     *time.Time `json:"pub_date"`
	Image       *string    `json:"image"`
	IsPublished *bool      `json:"is_published"`
	CategoryID  *int       `json:"category_id"`
	LocationID  *int       `json:"location_id"`
}

func (in postInput) post() *models.Post {
	post := &models.Post{IsPublished: true}
	in.applyTo(post)
	return post
}

func (in postInput) applyTo(post *models.Post) {
	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Text != nil {
		post.Text = *in.Text
	}
	if in.Image != nil {
		post.Image = *in.Image
	}
	if in.PubDate != nil {
		post.PubDate = *in.PubDate
	}
	if in.IsPublished != nil {
		post.IsPublished = *in.IsPublished
	}
	if in.CategoryID != nil {
		post.CategoryID = in.CategoryID
	}
	if in.LocationID != nil {
		post.LocationID = in.LocationID
	}
}

// Index lists the visible posts, newest first.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page, err := pc.posts.IndexPage(pageParam(r))
	if err != nil {
		pc.handleError(w, r, err)
		return
	}
	pc.sendPage(w, r, "", page)
}

// Category lists the visible posts of a published category.
func (pc *PostController) Category(w http.ResponseWriter, r *http.Request) {
	page, err := pc.posts.CategoryPage(mux.Vars(r)["slug"], pageParam(r))
	if err != nil {
		pc.handleError(w, r, err)
		return
	}
	pc.sendPage(w, r, page.Category.Title, page)
}

// Profile lists a user's posts.
func (pc *PostController) Profile(w http.ResponseWriter, r *http.Request) {
	page, err := pc.posts.ProfilePage(mux.Vars(r)["username"], auth.UserIDFrom(r.Context()), pageParam(r))
	if err != nil {
		pc.handleError(w, r, err)
		return
	}
	if middleware.IsAPI(r) {
		pc.sendJSON(w, http.StatusOK, page)
		return
	}

	data := pc.data(r, page.Profile.Username)
	data.Page = page
	data.Profile = page.Profile
	pc.render(w, r, http.StatusOK, "users/profile", data)
}

func (pc *PostController) sendPage(w http.ResponseWriter, r *http.Request, title string, page *services.PostPage) {
	if middleware.IsAPI(r) {
		pc.sendJSON(w, http.StatusOK, page)
		return
	}
	data := pc.data(r, title)
	data.Page = page
	pc.render(w, r, http.StatusOK, "posts/index", data)
}

// Show displays a single post with its comments
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pc.sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := pc.posts.GetPost(id, auth.UserIDFrom(r.Context()))
	if err != nil {
		pc.handleError(w, r, err)
		return
	}

	if middleware.IsAPI(r) {
		pc.sendJSON(w, http.StatusOK, post)
		return
	}
	data := pc.data(r, post.Title)
	data.Post = post
	pc.render(w, r, http.StatusOK, "posts/detail", data)
}

// New displays the form for creating a new post
func (pc *PostController) New(w http.ResponseWriter, r *http.Request) {
	form := url.Values{}
	form.Set("is_published", "on")
	form.Set("pub_date", time.Now().Format(views.DateTimeLocal))
	pc.renderForm(w, r, http.StatusOK, "New post", form, "")
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())

	if middleware.IsAPI(r) {
		var in postInput
		if err := decodeJSON(r, &in); err != nil {
			pc.sendError(w, r, err.Error(), http.StatusBadRequest)
			return
		}
		post := in.post()
		if err := pc.posts.CreatePost(user, post); err != nil {
			pc.handleError(w, r, err)
			return
		}
		pc.sendJSON(w, http.StatusCreated, post)
		return
	}

	post, form, err := parsePostForm(r)
	if err != nil {
		pc.renderForm(w, r, http.StatusBadRequest, "New post", form, err.Error())
		return
	}
	if err := pc.posts.CreatePost(user, post); err != nil {
		if msg := formError(err); msg != "" {
			pc.renderForm(w, r, http.StatusBadRequest, "New post", form, msg)
			return
		}
		pc.handleError(w, r, err)
		return
	}
	http.Redirect(w, r, "/profile/"+user.Username+"/", http.StatusSeeOther)
}

// Edit displays the edit form of a post to its author
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pc.sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := pc.posts.GetPostForEdit(auth.UserFrom(r.Context()), id)
	if err != nil {
		pc.handlePostError(w, r, id, err)
		return
	}
	pc.renderForm(w, r, http.StatusOK, "Edit post", postForm(post), "")
}

// Update handles editing an existing post. Users other than the author
// are redirected to the post.
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pc.sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}
	user := auth.UserFrom(r.Context())

	if middleware.IsAPI(r) {
		var in postInput
		if err := decodeJSON(r, &in); err != nil {
			pc.sendError(w, r, err.Error(), http.StatusBadRequest)
			return
		}
		post, err := pc.posts.GetPostForEdit(user, id)
		if err != nil {
			pc.handlePostError(w, r, id, err)
			return
		}
		in.applyTo(post)
		post, err = pc.posts.UpdatePost(user, id, post)
		if err != nil {
			pc.handlePostError(w, r, id, err)
			return
		}
		pc.sendJSON(w, http.StatusOK, post)
		return
	}

	changes, form, err := parsePostForm(r)
	if err != nil {
		pc.renderForm(w, r, http.StatusBadRequest, "Edit post", form, err.Error())
		return
	}
	if _, err := pc.posts.UpdatePost(user, id, changes); err != nil {
		if msg := formError(err); msg != "" {
			pc.renderForm(w, r, http.StatusBadRequest, "Edit post", form, msg)
			return
		}
		pc.handlePostError(w, r, id, err)
		return
	}
	http.Redirect(w, r, postURL(r, id), http.StatusSeeOther)
}

// ConfirmDelete asks the author (or staff) to confirm a deletion
func (pc *PostController) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pc.sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := pc.posts.GetPostForDelete(auth.UserFrom(r.Context()), id)
	if err != nil {
		pc.handlePostError(w, r, id, err)
		return
	}
	data := pc.data(r, "Delete post")
	data.Post = post
	pc.render(w, r, http.StatusOK, "posts/delete", data)
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pc.sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}
	user := auth.UserFrom(r.Context())

	if err := pc.posts.DeletePost(user, id); err != nil {
		pc.handlePostError(w, r, id, err)
		return
	}

	if middleware.IsAPI(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/profile/"+user.Username+"/", http.StatusSeeOther)
}

// handlePostError sends users who may not change a post back to it.
func (pc *PostController) handlePostError(w http.ResponseWriter, r *http.Request, id int, err error) {
	if errors.Is(err, services.ErrForbidden) {
		http.Redirect(w, r, postURL(r, id), http.StatusSeeOther)
		return
	}
	pc.handleError(w, r, err)
}

func postURL(r *http.Request, id int) string {
	if strings.HasPrefix(r.URL.Path, "/api") {
		return "/api/posts/" + strconv.Itoa(id)
	}
	return "/posts/" + strconv.Itoa(id) + "/"
}

func (pc *PostController) renderForm(w http.ResponseWriter, r *http.Request, status int, title string, form url.Values, formErr string) {
	categories, err := pc.catalog.PublishedCategories()
	if err != nil {
		pc.handleError(w, r, err)
		return
	}
	locations, err := pc.catalog.PublishedLocations()
	if err != nil {
		pc.handleError(w, r, err)
		return
	}

	data := pc.data(r, title)
	data.Form = form
	data.FormError = formErr
	data.Categories = categories
	data.Locations = locations
	pc.render(w, r, status, "posts/form", data)
}

// parsePostForm reads the post form. The submitted values are returned
// even on error so the form can be shown again.
func parsePostForm(r *http.Request) (*models.Post, url.Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, url.Values{}, fmt.Errorf("failed to parse form: %w", err)
	}
	form := r.PostForm

	post := &models.Post{
		Title:       strings.TrimSpace(form.Get("title")),
		Text:        strings.TrimSpace(form.Get("text")),
		Image:       strings.TrimSpace(form.Get("image")),
		IsPublished: form.Get("is_published") != "",
	}

	if v := form.Get("pub_date"); v != "" {
		pubDate, err := time.ParseInLocation(views.DateTimeLocal, v, time.Local)
		if err != nil {
			return nil, form, fmt.Errorf("invalid publication date %q", v)
		}
		post.PubDate = pubDate
	}

	var err error
	if post.CategoryID, err = optionalID(form.Get("category")); err != nil {
		return nil, form, fmt.Errorf("invalid category")
	}
	if post.LocationID, err = optionalID(form.Get("location")); err != nil {
		return nil, form, fmt.Errorf("invalid location")
	}
	return post, form, nil
}

func optionalID(v string) (*int, error) {
	if v == "" {
		return nil, nil
	}
	id, err := strconv.Atoi(v)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid id %q", v)
	}
	return &id, nil
}

// postForm prefills the edit form from a stored post.
func postForm(post *models.Post) url.Values {
	form := url.Values{}
	form.Set("title", post.Title)
	form.Set("text", post.Text)
	form.Set("image", post.Image)
	form.Set("pub_date", post.PubDate.Local().Format(views.DateTimeLocal))
	if post.IsPublished {
		form.Set("is_published", "on")
	}
	if post.CategoryID != nil {
		form.Set("category", strconv.Itoa(*post.CategoryID))
	}
	if post.LocationID != nil {
		form.Set("location", strconv.Itoa(*post.LocationID))
	}
	return form
}
