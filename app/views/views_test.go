package views

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"blogicum/app/models"
	"blogicum/app/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParsesAllPages(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, name := range []string{
		"posts/index", "posts/detail", "posts/form", "posts/delete",
		"comments/form", "comments/delete",
		"users/profile", "users/edit",
		"registration/registration_form", "registration/login",
		"pages/about", "pages/rules",
		"errors/403", "errors/404", "errors/500",
	} {
		assert.True(t, r.Has(name), name)
	}
}

func TestRenderIndex(t *testing.T) {
	r := Must(New())
	post := &models.Post{
		ID: 3, Title: "Hello <world>", Text: "body", IsPublished: true,
		PubDate: time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC),
		Author:  &models.User{Username: "leo"}, CommentCount: 2,
	}

	w := httptest.NewRecorder()
	err := r.Render(w, http.StatusOK, "posts/index", &Data{
		Page: &services.PostPage{Posts: []*models.Post{post}, Number: 1, TotalPages: 1, TotalCount: 1},
	})
	require.NoError(t, err)

	body := w.Body.String()
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, body, "Hello &lt;world&gt;")
	assert.Contains(t, body, "/posts/3/")
	assert.Contains(t, body, "Comments (2)")
	assert.Contains(t, body, "02 Jan 2024, 03:04")
	assert.Contains(t, body, "Log in")
}

func TestRenderDetailForAuthor(t *testing.T) {
	r := Must(New())
	author := &models.User{ID: 1, Username: "leo"}
	post := &models.Post{ID: 5, Title: "Mine", Text: "text", AuthorID: 1, Author: author}
	post.AddComment(&models.Comment{ID: 9, AuthorID: 1, Author: author, Text: "first!"})

	w := httptest.NewRecorder()
	require.NoError(t, r.Render(w, http.StatusOK, "posts/detail", &Data{CurrentUser: author, Post: post}))

	body := w.Body.String()
	assert.Contains(t, body, "/posts/5/edit/")
	assert.Contains(t, body, "/posts/5/edit_comment/9/")
	assert.Contains(t, body, "first!")
}

func TestRenderFormKeepsValues(t *testing.T) {
	r := Must(New())
	w := httptest.NewRecorder()
	err := r.Render(w, http.StatusBadRequest, "posts/form", &Data{
		Title:      "New post",
		FormError:  "title is required",
		Form:       url.Values{"text": {"draft text"}, "category": {"2"}},
		Categories: []*models.Category{{ID: 1, Title: "One"}, {ID: 2, Title: "Two"}},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "title is required")
	assert.Contains(t, body, "draft text")
	assert.Contains(t, body, `<option value="2" selected>Two</option>`)
}

func TestRenderUnknownPage(t *testing.T) {
	r := Must(New())
	w := httptest.NewRecorder()
	assert.Error(t, r.Render(w, http.StatusOK, "posts/missing", nil))
	assert.Zero(t, w.Body.Len())
}

func TestStatic(t *testing.T) {
	w := httptest.NewRecorder()
	Static().ServeHTTP(w, httptest.NewRequest("GET", "/static/css/style.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".navbar")
}
