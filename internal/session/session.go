// Package session keeps the signed-in user's bearer token and role.
//
// The token is issued by the catalog service's login endpoint. The client
// never holds the signing key, so the role claim is read without verifying
// the signature; the service re-checks the token on every request. The
// session is persisted as TOML so a restart keeps the user signed in.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/showcase/internal/backend"
)

// RoleAdmin unlocks the admin panel.
const RoleAdmin = "admin"

var (
	// ErrNoToken is returned when the login response carries no token.
	ErrNoToken = errors.New("token not received")
	// ErrInvalidToken is returned when the token cannot be decoded.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the token fields the client reads.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, creds backend.Credentials) (backend.LoginResponse, error)
}

// Session is the process-wide authentication state. The zero value is an
// unauthenticated session that is never persisted.
type Session struct {
	path string

	mu       sync.RWMutex
	token    string
	role     string
	username string
}

// Ensure Session can authorize backend requests.
var _ backend.TokenSource = (*Session)(nil)

type persisted struct {
	Token    string `toml:"token"`
	Username string `toml:"username,omitempty"`
}

// Load restores the session stored at path. A missing file yields an
// unauthenticated session. A stored token that no longer decodes is
// discarded and reported alongside a usable, unauthenticated session.
func Load(path string) (*Session, error) {
	s := &Session{path: strings.TrimSpace(path)}
	if s.path == "" {
		return s, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("read session: %w", err)
	}

	var raw persisted
	if err := toml.Unmarshal(data, &raw); err != nil {
		return s, fmt.Errorf("parse session: %w", err)
	}
	if raw.Token == "" {
		return s, nil
	}
	role, err := RoleOf(raw.Token)
	if err != nil {
		return s, fmt.Errorf("restore session: %w", err)
	}
	s.token, s.role, s.username = raw.Token, role, raw.Username
	return s, nil
}

// Login authenticates against the service and starts a session.
func (s *Session) Login(ctx context.Context, auth Authenticator, username, password string) error {
	resp, err := auth.Login(ctx, backend.Credentials{Username: username, Password: password})
	if err != nil {
		return err
	}
	return s.Start(resp.Token, username)
}

// Start stores token, decodes its role and persists the session.
func (s *Session) Start(token, username string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrNoToken
	}
	role, err := RoleOf(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token, s.role, s.username = token, role, username
	s.mu.Unlock()

	return s.save(persisted{Token: token, Username: username})
}

// Logout clears the session and removes its file.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.token, s.role, s.username = "", "", ""
	s.mu.Unlock()

	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Role returns the decoded role claim.
func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// Username returns the name used to sign in, when known.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// IsAdmin reports whether the session may use the admin panel.
func (s *Session) IsAdmin() bool {
	return s.Role() == RoleAdmin
}

func (s *Session) save(p persisted) error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// RoleOf decodes the role claim of token without verifying its signature.
func RoleOf(token string) (string, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims.Role, nil
}

// FailureMessage renders a login error for the user.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fmt.Sprintf("login failed (status %d)", apiErr.StatusCode)
	case errors.Is(err, ErrNoToken):
		return "token not received"
	case errors.Is(err, ErrInvalidToken):
		return "invalid token received"
	default:
		return "connection error"
	}
}
