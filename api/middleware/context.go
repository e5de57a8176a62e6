package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const contextIdentityKey = "auth_identity"

// Identity is the decoded session attached to a request after the auth gate.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	SessionID uuid.UUID
	Token     string
}

func SetIdentity(c echo.Context, identity Identity) {
	c.Set(contextIdentityKey, identity)
}

func IdentityFromContext(c echo.Context) (Identity, bool) {
	value := c.Get(contextIdentityKey)
	identity, ok := value.(Identity)
	return identity, ok
}

func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	identity, ok := IdentityFromContext(c)
	return identity.UserID, ok
}
