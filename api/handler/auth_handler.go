package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"trekora/api/middleware"
	"trekora/internal/dto"
	"trekora/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Service  *service.AuthService
	Validate *validator.Validate
}

func NewAuthHandler(svc *service.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		Service:  svc,
		Validate: validate,
	}
}

func (h *AuthHandler) RequestVerification(c echo.Context) error {
	var req dto.RequestVerificationRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.RequestVerification(c.Request().Context(), req.Email, stringPtr(c.RealIP())); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusAccepted)
}

func (h *AuthHandler) ResendStatus(c echo.Context) error {
	email := c.QueryParam("email")
	status, err := h.Service.ResendStatus(c.Request().Context(), email)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ResendStatusResponse{
		Allowed:             status.Allowed,
		RemainingCooldownMs: status.Remaining.Milliseconds(),
	})
}

func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req dto.VerifyEmailRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	result, err := h.Service.VerifyEmail(c.Request().Context(), req.Token, stringPtr(c.RealIP()), stringPtr(c.Request().UserAgent()))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, mapLoginResponse(result))
}

func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req dto.GoogleLoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	result, err := h.Service.LoginWithGoogle(c.Request().Context(), req.IDToken, stringPtr(c.RealIP()), stringPtr(c.Request().UserAgent()))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, mapLoginResponse(result))
}

func (h *AuthHandler) Logout(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	if _, err := h.Service.Logout(c.Request().Context(), identity.Token, &identity.UserID, stringPtr(c.RealIP())); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) LogoutAll(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	count, err := h.Service.LogoutAll(c.Request().Context(), identity.UserID, stringPtr(c.RealIP()))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.LogoutAllResponse{Revoked: count})
}

// SessionStatus works for anonymous callers too: it sits behind OptionalAuth
// and reports whether the request carried a live session.
func (h *AuthHandler) SessionStatus(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusOK, dto.SessionStatusResponse{Authenticated: false})
	}
	user, err := h.Service.CurrentUser(c.Request().Context(), identity.UserID)
	if err != nil {
		return writeServiceError(c, err)
	}
	if user == nil {
		return c.JSON(http.StatusOK, dto.SessionStatusResponse{Authenticated: false})
	}
	response := dto.UserResponseFromEntity(user)
	return c.JSON(http.StatusOK, dto.SessionStatusResponse{Authenticated: true, User: &response})
}

func (h *AuthHandler) Me(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	user, err := h.Service.CurrentUser(c.Request().Context(), identity.UserID)
	if err != nil {
		return writeServiceError(c, err)
	}
	if user == nil {
		return writeError(c, http.StatusNotFound, errors.New("user not found"))
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *AuthHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, dto.ErrorResponse{Message: err.Error()})
}

func writeServiceError(c echo.Context, err error) error {
	if cooldown, ok := service.AsCooldown(err); ok {
		return c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
			Message:    err.Error(),
			CooldownMs: cooldown.Remaining.Milliseconds(),
		})
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrAlreadyVerified):
		status = http.StatusConflict
	case errors.Is(err, service.ErrTokenNotFound), errors.Is(err, service.ErrInvalidIDToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrTokenExpired):
		status = http.StatusGone
	case errors.Is(err, service.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrEmailNotDelivered):
		// The wrapped transport error stays server-side.
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: service.ErrEmailNotDelivered.Error()})
	}
	if status == http.StatusInternalServerError {
		// Storage and signing faults stay out of the response body.
		return c.JSON(status, dto.ErrorResponse{Message: "internal error"})
	}
	return writeError(c, status, err)
}

func stringPtr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func mapLoginResponse(result *service.LoginResult) dto.LoginResponse {
	if result == nil {
		return dto.LoginResponse{}
	}
	return dto.LoginResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
		User:        dto.UserResponseFromEntity(result.User),
	}
}
