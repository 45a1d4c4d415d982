package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"blogicum/app/config"
	"blogicum/app/middleware"
	"blogicum/app/models"
	"blogicum/app/repositories"
	"blogicum/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	store  *repositories.Store
	app    *App
	router *mux.Router
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := repositories.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{
		SessionTTL: time.Hour,
		JWTSecret:  "test-secret",
		AccessTTL:  time.Hour,
	}
	app, err := NewApp(services.FromStore(store), cfg, time.Now)
	require.NoError(t, err)
	app.Users.WithHashCost(bcrypt.MinCost)

	return &testEnv{store: store, app: app, router: SetupRoutes(app)}
}

// register creates a user and returns them with a session cookie.
func (e *testEnv) register(t *testing.T, username string) (*models.User, *http.Cookie) {
	t.Helper()
	user, err := e.app.Users.Register(services.Registration{Username: username, Password: "password-" + username})
	require.NoError(t, err)
	session, err := e.app.Sessions.Start(user)
	require.NoError(t, err)
	return user, &http.Cookie{Name: middleware.SessionCookie, Value: session.Token}
}

func (e *testEnv) staff(t *testing.T, username string) (*models.User, *http.Cookie) {
	t.Helper()
	user, cookie := e.register(t, username)
	user.IsStaff = true
	require.NoError(t, e.store.Users.Update(user))
	return user, cookie
}

func (e *testEnv) token(t *testing.T, user *models.User) string {
	t.Helper()
	token, _, err := e.app.Tokens.Generate(user.ID, user.Username)
	require.NoError(t, err)
	return token
}

func (e *testEnv) post(t *testing.T, author *models.User, title string, mutate ...func(*models.Post)) *models.Post {
	t.Helper()
	post := &models.Post{Title: title, Text: "text of " + title, IsPublished: true}
	for _, m := range mutate {
		m(post)
	}
	require.NoError(t, e.app.Posts.CreatePost(author, post))
	return post
}

func (e *testEnv) category(t *testing.T, slug string, published bool) *models.Category {
	t.Helper()
	category := &models.Category{Title: strings.ToUpper(slug), Description: "about " + slug, Slug: slug, IsPublished: published}
	require.NoError(t, e.store.Categories.Create(category))
	return category
}

type request struct {
	method string
	path   string
	form   url.Values
	json   interface{}
	cookie *http.Cookie
	token  string
}

func (e *testEnv) do(t *testing.T, req request) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	switch {
	case req.form != nil:
		body = strings.NewReader(req.form.Encode())
	case req.json != nil:
		data, err := json.Marshal(req.json)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	r := httptest.NewRequest(req.method, req.path, body)
	if req.form != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if req.json != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if req.cookie != nil {
		r.AddCookie(req.cookie)
	}
	if req.token != "" {
		r.Header.Set("Authorization", "Bearer "+req.token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)
	return w
}

func unpublished(p *models.Post) { p.IsPublished = false }

func tomorrow(p *models.Post) { p.PubDate = time.Now().Add(24 * time.Hour) }

func inCategory(c *models.Category) func(*models.Post) {
	return func(p *models.Post) { p.SetCategory(c) }
}
