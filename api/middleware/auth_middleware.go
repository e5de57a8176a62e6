package middleware

import (
	"context"
	"net/http"
	"strings"

	"trekora/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionVerifier checks a signed token against the session store. A nil
// claims result with a nil error means the token is simply invalid.
type SessionVerifier interface {
	Verify(ctx context.Context, signedToken string) (*utils.SessionClaims, error)
}

type AuthMiddleware struct {
	Sessions SessionVerifier
}

// RequireAuth rejects the request unless it carries a live session token.
func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := m.resolve(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		if identity == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		SetIdentity(c, *identity)
		return next(c)
	}
}

// OptionalAuth attaches the identity when a valid token is present and lets
// the request through anonymous otherwise. The handler decides what that
// means.
func (m AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := m.resolve(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		if identity != nil {
			SetIdentity(c, *identity)
		}
		return next(c)
	}
}

func (m AuthMiddleware) resolve(c echo.Context) (*Identity, error) {
	if m.Sessions == nil {
		return nil, nil
	}
	token := extractBearerToken(c.Request())
	if token == "" {
		return nil, nil
	}
	claims, err := m.Sessions.Verify(c.Request().Context(), token)
	if err != nil {
		return nil, err
	}
	if claims == nil {
		return nil, nil
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, nil
	}
	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, nil
	}
	return &Identity{
		UserID:    userID,
		Email:     claims.Email,
		SessionID: sessionID,
		Token:     token,
	}, nil
}

func extractBearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
