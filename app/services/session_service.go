package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"blogicum/app/models"
	"blogicum/app/repositories"

	"github.com/google/uuid"
)

// SessionService issues and resolves browser sessions.
type SessionService struct {
	repos Repositories
	ttl   time.Duration
	now   Clock
}

// NewSessionService creates a new SessionService
func NewSessionService(repos Repositories, ttl time.Duration, now Clock) *SessionService {
	return &SessionService{repos: repos, ttl: ttl, now: now}
}

// TTL is the lifetime of new sessions.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Start opens a session for user.
func (s *SessionService) Start(user *models.User) (*models.Session, error) {
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.repos.Sessions.Create(session, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// Resolve returns the user behind a session token.
func (s *SessionService) Resolve(token string) (*models.User, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, fmt.Errorf("session: %w", ErrNotFound)
	}

	session, err := s.repos.Sessions.Get(token)
	if err != nil {
		return nil, lookupErr("session", err)
	}
	if session.Expired(s.now()) {
		s.drop(token)
		return nil, fmt.Errorf("session expired: %w", ErrNotFound)
	}

	user, err := s.repos.Users.GetByID(session.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.drop(token)
		}
		return nil, lookupErr("user", err)
	}
	return user, nil
}

// End closes a session.
func (s *SessionService) End(token string) error {
	return s.repos.Sessions.Delete(token)
}

// drop removes a session that can no longer be used. Failures are logged;
// the caller rejects the session either way.
func (s *SessionService) drop(token string) {
	if err := s.repos.Sessions.Delete(token); err != nil {
		log.Printf("failed to delete session: %v", err)
	}
}
