package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"trekora/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	claims *utils.SessionClaims
	err    error
}

func (v *fakeVerifier) Verify(_ context.Context, _ string) (*utils.SessionClaims, error) {
	return v.claims, v.err
}

func runGate(t *testing.T, gate func(echo.HandlerFunc) echo.HandlerFunc, authorization string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	request := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	c := e.NewContext(request, recorder)

	handler := gate(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c)
}

func validClaims(userID, sessionID uuid.UUID) *utils.SessionClaims {
	return &utils.SessionClaims{
		UserID:    userID.String(),
		Email:     "traveler@example.com",
		SessionID: sessionID.String(),
	}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	m := AuthMiddleware{Sessions: &fakeVerifier{claims: validClaims(uuid.New(), uuid.New())}}

	_, err := runGate(t, m.RequireAuth, "")
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	m := AuthMiddleware{Sessions: &fakeVerifier{claims: validClaims(uuid.New(), uuid.New())}}

	for _, header := range []string{"Bearer", "Basic abc123", "token-without-scheme"} {
		_, err := runGate(t, m.RequireAuth, header)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok, "header %q", header)
		require.Equal(t, http.StatusUnauthorized, httpErr.Code, "header %q", header)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	// Verifier says the token is dead (nil claims, nil error).
	m := AuthMiddleware{Sessions: &fakeVerifier{}}

	_, err := runGate(t, m.RequireAuth, "Bearer some-token")
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireAuth_AttachesIdentity(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()
	m := AuthMiddleware{Sessions: &fakeVerifier{claims: validClaims(userID, sessionID)}}

	c, err := runGate(t, m.RequireAuth, "Bearer signed-token")
	require.NoError(t, err)

	identity, ok := IdentityFromContext(c)
	require.True(t, ok)
	require.Equal(t, userID, identity.UserID)
	require.Equal(t, sessionID, identity.SessionID)
	require.Equal(t, "traveler@example.com", identity.Email)
	require.Equal(t, "signed-token", identity.Token)
}

func TestOptionalAuth_ProceedsAnonymous(t *testing.T) {
	m := AuthMiddleware{Sessions: &fakeVerifier{}}

	for _, header := range []string{"", "Bearer dead-token"} {
		c, err := runGate(t, m.OptionalAuth, header)
		require.NoError(t, err, "header %q", header)
		_, ok := IdentityFromContext(c)
		require.False(t, ok, "header %q", header)
	}
}

func TestOptionalAuth_AttachesIdentityWhenPresent(t *testing.T) {
	userID := uuid.New()
	m := AuthMiddleware{Sessions: &fakeVerifier{claims: validClaims(userID, uuid.New())}}

	c, err := runGate(t, m.OptionalAuth, "Bearer signed-token")
	require.NoError(t, err)

	identity, ok := IdentityFromContext(c)
	require.True(t, ok)
	require.Equal(t, userID, identity.UserID)
}
