package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/logger"
)

// loginResponse covers the token envelopes the backend returns.
type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
	IsAdmin     *bool  `json:"is_admin"`
	User        *struct {
		Username string `json:"username"`
		IsAdmin  *bool  `json:"is_admin"`
	} `json:"user"`
}

// Login exchanges credentials for a session. The token is decoded without
// verification to read its expiry and admin claim; the backend remains the
// authority on every request.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", creds, &resp, false)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			if apiErr.Message == "" {
				return nil, domain.ErrInvalidCredentials
			}
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, apiErr.Message)
		}
		return nil, err
	}

	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}
	if token == "" {
		return nil, errors.New("login response carried no token")
	}

	session := &domain.Session{
		Token:     token,
		Username:  creds.Username,
		CreatedAt: c.now(),
	}

	claims := tokenClaims(token)
	if exp := claims.expiresAt; exp != nil {
		session.ExpiresAt = exp
	}
	session.IsAdmin = claims.isAdmin

	if resp.User != nil {
		if resp.User.Username != "" {
			session.Username = resp.User.Username
		}
		if resp.User.IsAdmin != nil {
			session.IsAdmin = *resp.User.IsAdmin
		}
	}
	if resp.IsAdmin != nil {
		session.IsAdmin = *resp.IsAdmin
	}
	return session, nil
}

type parsedClaims struct {
	expiresAt *time.Time
	isAdmin   bool
}

// tokenClaims reads exp and the admin flag from a JWT. Opaque tokens yield
// zero claims.
func tokenClaims(token string) parsedClaims {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		logger.Debug("Session token is not a JWT: %v", err)
		return parsedClaims{}
	}

	var out parsedClaims
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		out.expiresAt = &t
	}
	out.isAdmin = adminClaim(claims)
	return out
}

func adminClaim(claims jwt.MapClaims) bool {
	for _, key := range []string{"is_admin", "isAdmin", "admin"} {
		switch v := claims[key].(type) {
		case bool:
			return v
		case float64:
			return v != 0
		case string:
			return strings.EqualFold(v, "true")
		}
	}
	if role, ok := claims["role"].(string); ok {
		return strings.EqualFold(role, "admin")
	}
	return false
}
