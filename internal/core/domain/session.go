package domain

import "time"

// Credentials are the username and password submitted at login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is the client-side authentication state: a bearer token and an
// admin flag, persisted locally and cleared on logout.
type Session struct {
	Token     string
	Username  string
	IsAdmin   bool
	ExpiresAt *time.Time
	CreatedAt time.Time
}

// LoggedIn returns true if the session carries a token.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

// Expired returns true if the session has an expiry in the past.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.ExpiresAt == nil {
		return false
	}
	return !now.Before(*s.ExpiresAt)
}
