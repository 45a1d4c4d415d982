package middleware

import (
	"log"
	"net/http"
	"strings"

	"blogicum/app/auth"
	"blogicum/app/models"
)

// SessionCookie is the name of the browser session cookie.
const SessionCookie = "sessionid"

// SessionResolver maps a session token to its user.
type SessionResolver interface {
	Resolve(token string) (*models.User, error)
}

// TokenVerifier checks API access tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// UserLookup loads users by ID.
type UserLookup interface {
	GetUser(id int) (*models.User, error)
}

// Authenticate puts the requesting user into the context. Browsers
// authenticate with the session cookie, API clients with a bearer token.
// Requests without valid credentials continue anonymously.
func Authenticate(sessions SessionResolver, tokens TokenVerifier, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := bearerUser(r, tokens, users); user != nil {
				r = r.WithContext(auth.WithUser(r.Context(), user))
			} else if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
				user, err := sessions.Resolve(c.Value)
				if err == nil {
					r = r.WithContext(auth.WithUser(r.Context(), user))
				} else {
					log.Printf("session rejected: %v", err)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerUser(r *http.Request, tokens TokenVerifier, users UserLookup) *models.User {
	header := r.Header.Get("Authorization")
	if header == "" || tokens == nil {
		return nil
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return nil
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		log.Printf("bearer token rejected: %v", err)
		return nil
	}
	user, err := users.GetUser(claims.UserID())
	if err != nil {
		return nil
	}
	return user
}

// RequireAuth lets only authenticated users through. Browsers are sent to
// the login page, API clients get 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.UserFrom(r.Context()) == nil {
			if IsAPI(r) {
				writeError(w, r, http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireGuest sends logged-in users away from the login and
// registration pages.
func RequireGuest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.UserFrom(r.Context()) != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireStaff lets only staff users through.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFrom(r.Context())
		if user == nil {
			writeError(w, r, http.StatusUnauthorized)
			return
		}
		if !user.IsStaff {
			writeError(w, r, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
