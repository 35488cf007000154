package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driving"
	"github.com/custodia-labs/medcheck-cli/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService owns the authentication state. It is constructed at
// startup, reads the persisted session, and tears session-scoped state down
// on logout through registered hooks.
type SessionService struct {
	auth  driven.AuthBackend
	store driven.SessionStore
	now   func() time.Time

	mu      sync.Mutex
	onLogin []func(*domain.Session)
	onExit  []func()
}

// NewSessionService creates a session service. auth may be nil, in which
// case Login reports the backend as not configured.
func NewSessionService(auth driven.AuthBackend, store driven.SessionStore) *SessionService {
	return &SessionService{
		auth:  auth,
		store: store,
		now:   time.Now,
	}
}

// OnLogout registers a hook run after the session is cleared.
func (s *SessionService) OnLogout(hook func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExit = append(s.onExit, hook)
}

// OnLogin registers a hook run after a successful login.
func (s *SessionService) OnLogin(hook func(*domain.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogin = append(s.onLogin, hook)
}

// Login authenticates and persists the session.
func (s *SessionService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	if s.auth == nil {
		return nil, fmt.Errorf("login: backend %w", domain.ErrNotConfigured)
	}

	session, err := s.auth.Login(ctx, domain.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if session.Username == "" {
		session.Username = username
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = s.now()
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	logger.Info("Logged in as %s (admin=%t)", session.Username, session.IsAdmin)

	s.mu.Lock()
	hooks := append([]func(*domain.Session){}, s.onLogin...)
	s.mu.Unlock()
	for _, hook := range hooks {
		hook(session)
	}
	return session, nil
}

// Logout clears the persisted session and runs logout hooks.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	logger.Info("Logged out")

	s.mu.Lock()
	hooks := append([]func(){}, s.onExit...)
	s.mu.Unlock()
	for _, hook := range hooks {
		hook()
	}
	return nil
}

// Current returns the active session, or nil when logged out. An expired
// session is cleared and reported as logged out.
func (s *SessionService) Current(ctx context.Context) (*domain.Session, error) {
	session, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if !session.LoggedIn() {
		return nil, nil
	}
	if session.Expired(s.now()) {
		logger.Info("Stored session for %s has expired", session.Username)
		if err := s.store.Clear(ctx); err != nil {
			return nil, fmt.Errorf("clearing expired session: %w", err)
		}
		return nil, nil
	}
	return session, nil
}

// AccessToken returns the bearer token of the active session, or an empty
// string when logged out.
func (s *SessionService) AccessToken(ctx context.Context) (string, error) {
	session, err := s.Current(ctx)
	if err != nil || session == nil {
		return "", err
	}
	return session.Token, nil
}

// RequireAdmin checks for an active admin session.
func (s *SessionService) RequireAdmin(ctx context.Context) error {
	session, err := s.Current(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return domain.ErrUnauthorized
	}
	if !session.IsAdmin {
		return domain.ErrForbidden
	}
	return nil
}
