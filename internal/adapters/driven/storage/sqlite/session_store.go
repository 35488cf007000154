package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driven"
)

// sessionStore implements driven.SessionStore. There is at most one row.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// Load returns the stored session, or nil when logged out.
func (s *sessionStore) Load(ctx context.Context) (*domain.Session, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT token, username, is_admin, expires_at, created_at
		FROM sessions WHERE id = 1
	`)

	var (
		session   domain.Session
		isAdmin   int
		expiresAt sql.NullInt64
		createdAt int64
	)
	err := row.Scan(&session.Token, &session.Username, &isAdmin, &expiresAt, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	session.IsAdmin = isAdmin != 0
	session.CreatedAt = time.Unix(0, createdAt)
	if expiresAt.Valid {
		t := time.Unix(0, expiresAt.Int64)
		session.ExpiresAt = &t
	}
	return &session, nil
}

// Save replaces the stored session.
func (s *sessionStore) Save(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return s.Clear(ctx)
	}

	var expiresAt sql.NullInt64
	if session.ExpiresAt != nil {
		expiresAt = sql.NullInt64{Int64: session.ExpiresAt.UnixNano(), Valid: true}
	}
	createdAt := session.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sessions (id, token, username, is_admin, expires_at, created_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			username = excluded.username,
			is_admin = excluded.is_admin,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at
	`, session.Token, session.Username, boolToInt(session.IsAdmin), expiresAt, createdAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Clear removes the stored session.
func (s *sessionStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
