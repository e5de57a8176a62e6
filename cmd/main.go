package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"trekora/api/handler"
	apiMiddleware "trekora/api/middleware"
	"trekora/api/routes"
	"trekora/config"
	"trekora/internal/repository"
	"trekora/internal/service"
	"trekora/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	validate := validator.New()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	if len(cfg.JWTSecret) == 0 {
		logger.Fatal("JWT_SECRET is required")
	}

	db := config.ConnectDB(cfg.DatabaseURL)

	jwtManager := &utils.JWTManager{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		SessionTTL: cfg.SessionTTL,
	}

	userRepo := repository.NewUserRepository(db)
	verificationRepo := repository.NewVerificationTokenRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	eventRepo := repository.NewAuthEventRepository(db)

	sessionManager := service.NewSessionManager(jwtManager, sessionRepo, service.RealClock{})

	var emailSender service.EmailSender
	if cfg.ResendAPIKey != "" {
		emailSender = service.NewResendEmailSender(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppBaseURL)
	} else {
		logger.Warn("RESEND_API_KEY not set, verification emails disabled")
	}

	var googleVerifier service.IdentityVerifier
	if cfg.GoogleClientID != "" {
		googleVerifier = service.NewGoogleVerifier(cfg.GoogleClientID)
	}

	authService := service.NewAuthService(
		userRepo,
		verificationRepo,
		eventRepo,
		sessionManager,
		emailSender,
		googleVerifier,
		service.RealClock{},
		service.AuthConfig{
			SessionTTL:           cfg.SessionTTL,
			VerificationTokenTTL: cfg.VerificationTokenTTL,
			ResendCooldown:       cfg.ResendCooldown,
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanup := service.NewCleanupScheduler(verificationRepo, sessionRepo, logger)
	cleanup.Start(ctx)

	authHandler := handler.NewAuthHandler(authService, validate)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{Sessions: sessionManager}
	router := routes.NewRouter(app, authHandler, authMiddleware)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
