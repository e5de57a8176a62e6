package routes

import (
	"net/http"
	"time"

	"trekora/api/handler"
	"trekora/api/middleware"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	AuthMiddleware middleware.AuthMiddleware
	RequestRate    *middleware.RateLimiter
	VerifyRate     *middleware.RateLimiter
}

func NewRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware middleware.AuthMiddleware) *Router {
	return &Router{
		Echo:           e,
		Auth:           authHandler,
		AuthMiddleware: authMiddleware,
		RequestRate:    middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
		VerifyRate:     middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.POST("/auth/request-verification", r.Auth.RequestVerification, r.RequestRate.Middleware())
	e.GET("/auth/resend-status", r.Auth.ResendStatus, r.VerifyRate.Middleware())
	e.POST("/auth/verify", r.Auth.VerifyEmail, r.VerifyRate.Middleware())
	e.POST("/auth/google", r.Auth.GoogleLogin, r.VerifyRate.Middleware())
	e.POST("/auth/logout", r.Auth.Logout, r.AuthMiddleware.RequireAuth)
	e.POST("/auth/logout-all", r.Auth.LogoutAll, r.AuthMiddleware.RequireAuth)
	e.GET("/auth/session", r.Auth.SessionStatus, r.AuthMiddleware.OptionalAuth)

	e.GET("/me", r.Auth.Me, r.AuthMiddleware.RequireAuth)
	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
}
