package session

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/showcase/internal/backend"
)

func signedToken(t *testing.T, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             role,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
	})
	s, err := tok.SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return s
}

type fakeAuth struct {
	resp backend.LoginResponse
	err  error
	got  backend.Credentials
}

func (f *fakeAuth) Login(_ context.Context, creds backend.Credentials) (backend.LoginResponse, error) {
	f.got = creds
	return f.resp, f.err
}

func TestLoad_MissingFileIsSignedOut(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "session.toml"))
	require.NoError(t, err)
	assert.False(t, s.Authenticated())
	assert.False(t, s.IsAdmin())
	assert.Empty(t, s.Token())
}

func TestLogin_StoresRoleAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.toml")
	s, err := Load(path)
	require.NoError(t, err)

	token := signedToken(t, RoleAdmin)
	auth := &fakeAuth{resp: backend.LoginResponse{Token: token}}
	require.NoError(t, s.Login(context.Background(), auth, "ana", "pw"))

	assert.Equal(t, backend.Credentials{Username: "ana", Password: "pw"}, auth.got)
	assert.True(t, s.Authenticated())
	assert.True(t, s.IsAdmin())
	assert.Equal(t, token, s.Token())
	assert.Equal(t, "ana", s.Username())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	restored, err := Load(path)
	require.NoError(t, err)
	assert.True(t, restored.IsAdmin())
	assert.Equal(t, "ana", restored.Username())
}

func TestLogin_NonAdminRole(t *testing.T) {
	s := &Session{}
	require.NoError(t, s.Start(signedToken(t, "user"), "bob"))
	assert.True(t, s.Authenticated())
	assert.False(t, s.IsAdmin())
	assert.Equal(t, "user", s.Role())
}

func TestLogin_Failures(t *testing.T) {
	s := &Session{}

	err := s.Login(context.Background(), &fakeAuth{}, "u", "p")
	assert.ErrorIs(t, err, ErrNoToken)
	assert.False(t, s.Authenticated())

	err = s.Start("not-a-jwt", "u")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.False(t, s.Authenticated())

	apiErr := &backend.APIError{StatusCode: http.StatusUnauthorized, Message: "bad credentials"}
	err = s.Login(context.Background(), &fakeAuth{err: apiErr}, "u", "p")
	assert.ErrorAs(t, err, &apiErr)
}

func TestLogout_ClearsStateAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	s, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, s.Start(signedToken(t, RoleAdmin), "ana"))

	require.NoError(t, s.Logout())
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Role())
	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	require.NoError(t, s.Logout(), "logging out twice is harmless")
}

func TestLoad_DiscardsUndecodableToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("token = \"garbage\"\n"), 0o600))

	s, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidToken)
	require.NotNil(t, s)
	assert.False(t, s.Authenticated())
}

func TestFailureMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&backend.APIError{StatusCode: 401, Message: "Invalid credentials"}, "Invalid credentials"},
		{&backend.APIError{StatusCode: 500}, "login failed (status 500)"},
		{ErrNoToken, "token not received"},
		{ErrInvalidToken, "invalid token received"},
		{errors.New("dial tcp: connection refused"), "connection error"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FailureMessage(tc.err))
	}
}
