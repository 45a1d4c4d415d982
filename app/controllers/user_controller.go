package controllers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"blogicum/app/auth"
	"blogicum/app/middleware"
	"blogicum/app/models"
	"blogicum/app/services"
	"blogicum/app/views"
)

// UserController handles registration, login and profile editing
type UserController struct {
	responder
	users    *services.UserService
	sessions *services.SessionService
	tokens   *auth.TokenIssuer
}

// NewUserController creates a new UserController
func NewUserController(users *services.UserService, sessions *services.SessionService, tokens *auth.TokenIssuer, renderer *views.Renderer) *UserController {
	return &UserController{
		responder: responder{views: renderer},
		users:     users,
		sessions:  sessions,
		tokens:    tokens,
	}
}

// RegisterForm shows the sign-up form
func (uc *UserController) RegisterForm(w http.ResponseWriter, r *http.Request) {
	uc.renderPage(w, r, http.StatusOK, "registration/registration_form", "Sign up", url.Values{}, "")
}

// Register creates the account, logs the user in and goes to the index.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		uc.sendError(w, r, "Failed to parse form", http.StatusBadRequest)
		return
	}
	form := r.PostForm

	user, err := uc.users.SignUp(services.Registration{
		Username:  form.Get("username"),
		Email:     form.Get("email"),
		FirstName: form.Get("first_name"),
		LastName:  form.Get("last_name"),
		Password:  form.Get("password1"),
		Confirm:   form.Get("password2"),
	})
	if err != nil {
		if msg := formError(err); msg != "" {
			uc.renderPage(w, r, http.StatusBadRequest, "registration/registration_form", "Sign up", form, msg)
			return
		}
		uc.handleError(w, r, err)
		return
	}

	if !uc.startSession(w, r, user) {
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LoginForm shows the login form
func (uc *UserController) LoginForm(w http.ResponseWriter, r *http.Request) {
	data := uc.data(r, "Log in")
	data.Form = url.Values{}
	data.Next = safeNext(r.URL.Query().Get("next"))
	uc.render(w, r, http.StatusOK, "registration/login", data)
}

// Login checks the credentials and sets the session cookie
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		uc.sendError(w, r, "Failed to parse form", http.StatusBadRequest)
		return
	}
	form := r.PostForm
	next := safeNext(form.Get("next"))

	user, err := uc.users.Authenticate(form.Get("username"), form.Get("password"))
	if err != nil {
		if msg := formError(err); msg != "" {
			data := uc.data(r, "Log in")
			data.Form = url.Values{"username": {form.Get("username")}}
			data.FormError = msg
			data.Next = next
			uc.render(w, r, http.StatusUnauthorized, "registration/login", data)
			return
		}
		uc.handleError(w, r, err)
		return
	}

	if !uc.startSession(w, r, user) {
		return
	}
	if next == "" {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Logout ends the session
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(middleware.SessionCookie); err == nil && c.Value != "" {
		if err := uc.sessions.End(c.Value); err != nil {
			uc.handleError(w, r, err)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (uc *UserController) startSession(w http.ResponseWriter, r *http.Request, user *models.User) bool {
	session, err := uc.sessions.Start(user)
	if err != nil {
		uc.handleError(w, r, err)
		return false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return true
}

// EditProfileForm shows the profile form of the logged-in user
func (uc *UserController) EditProfileForm(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	form := url.Values{
		"username":   {user.Username},
		"first_name": {user.FirstName},
		"last_name":  {user.LastName},
		"email":      {user.Email},
	}
	uc.renderPage(w, r, http.StatusOK, "users/edit", "Edit profile", form, "")
}

// EditProfile saves the profile and goes back to the profile page
func (uc *UserController) EditProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		uc.sendError(w, r, "Failed to parse form", http.StatusBadRequest)
		return
	}
	form := r.PostForm

	user, err := uc.users.UpdateProfile(auth.UserFrom(r.Context()), services.ProfileUpdate{
		Username:  form.Get("username"),
		Email:     form.Get("email"),
		FirstName: form.Get("first_name"),
		LastName:  form.Get("last_name"),
	})
	if err != nil {
		if msg := formError(err); msg != "" {
			uc.renderPage(w, r, http.StatusBadRequest, "users/edit", "Edit profile", form, msg)
			return
		}
		uc.handleError(w, r, err)
		return
	}
	http.Redirect(w, r, "/profile/"+user.Username+"/", http.StatusSeeOther)
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Token exchanges a username and password for an API access token
func (uc *UserController) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeJSON(r, &req); err != nil {
		uc.sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := uc.users.Authenticate(req.Username, req.Password)
	if err != nil {
		uc.handleError(w, r, err)
		return
	}
	token, expires, err := uc.tokens.Generate(user.ID, user.Username)
	if err != nil {
		uc.handleError(w, r, err)
		return
	}
	uc.sendJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresAt: expires})
}

func (uc *UserController) renderPage(w http.ResponseWriter, r *http.Request, status int, page, title string, form url.Values, formErr string) {
	data := uc.data(r, title)
	data.Form = form
	data.FormError = formErr
	uc.render(w, r, status, page, data)
}

// safeNext only allows local redirect targets. Browsers read a backslash
// as a slash and drop tabs and newlines, so those are rejected outright.
func safeNext(next string) string {
	if strings.ContainsAny(next, "\\\t\r\n") || strings.HasPrefix(next, "//") {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return ""
	}
	return next
}
