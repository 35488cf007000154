package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medcheck-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

func TestSessionService_LoginPersistsAndRunsHooks(t *testing.T) {
	store := memory.NewSessionStore()
	auth := &mockAuth{session: &domain.Session{Token: "tok", IsAdmin: true}}
	service := NewSessionService(auth, store)

	var hooked *domain.Session
	service.OnLogin(func(s *domain.Session) { hooked = s })

	session, err := service.Login(context.Background(), " admin ", "secret")
	require.NoError(t, err)

	assert.Equal(t, "admin", auth.creds.Username)
	assert.Equal(t, "admin", session.Username)
	assert.False(t, session.CreatedAt.IsZero())
	require.NotNil(t, hooked)
	assert.Equal(t, "tok", hooked.Token)

	stored, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", stored.Token)
}

func TestSessionService_LoginValidation(t *testing.T) {
	service := NewSessionService(&mockAuth{}, memory.NewSessionStore())

	_, err := service.Login(context.Background(), "", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.Login(context.Background(), "user", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewSessionService(nil, memory.NewSessionStore()).Login(context.Background(), "user", "pw")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestSessionService_LoginRejected(t *testing.T) {
	store := memory.NewSessionStore()
	service := NewSessionService(&mockAuth{err: domain.ErrInvalidCredentials}, store)

	_, err := service.Login(context.Background(), "user", "bad")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	stored, _ := store.Load(context.Background())
	assert.Nil(t, stored)
}

func TestSessionService_LogoutClearsAndRunsHooks(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()
	require.NoError(t, store.Save(ctx, &domain.Session{Token: "tok"}))
	service := NewSessionService(nil, store)

	panel := newTestPanel(t, &mockBackend{}, domain.ModeDrugDrug)
	_, _ = panel.Add(drug("1", "A"))
	service.OnLogout(panel.Clear)

	require.NoError(t, service.Logout(ctx))

	current, err := service.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
	assert.Empty(t, panel.Items())
}

func TestSessionService_ExpiredSessionIsCleared(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()
	past := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, &domain.Session{Token: "old", ExpiresAt: &past}))

	service := NewSessionService(nil, store)
	service.now = func() time.Time { return past.Add(time.Minute) }

	current, err := service.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	token, err := service.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	stored, _ := store.Load(ctx)
	assert.Nil(t, stored)
}

func TestSessionService_RequireAdmin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()
	service := NewSessionService(nil, store)

	assert.ErrorIs(t, service.RequireAdmin(ctx), domain.ErrUnauthorized)

	require.NoError(t, store.Save(ctx, &domain.Session{Token: "tok"}))
	assert.ErrorIs(t, service.RequireAdmin(ctx), domain.ErrForbidden)

	require.NoError(t, store.Save(ctx, &domain.Session{Token: "tok", IsAdmin: true}))
	assert.NoError(t, service.RequireAdmin(ctx))

	token, err := service.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}
