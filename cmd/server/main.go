package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shelfkeeper/api/internal/config"
	"github.com/shelfkeeper/api/internal/database"
	"github.com/shelfkeeper/api/internal/handler"
	"github.com/shelfkeeper/api/internal/middleware"
	"github.com/shelfkeeper/api/internal/repository"
	"github.com/shelfkeeper/api/internal/service"
	"github.com/shelfkeeper/api/pkg/signer"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize repositories
	authorRepo := repository.NewAuthorRepository(db)
	bookRepo := repository.NewBookRepository(db)
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	// Initialize services
	catalogService := service.NewCatalogService(service.CatalogServiceConfig{
		AuthorRepo: authorRepo,
		BookRepo:   bookRepo,
	})

	authService := service.NewAuthService(userRepo)

	sessionService := service.NewSessionService(service.SessionServiceConfig{
		SessionRepo: sessionRepo,
		UserRepo:    userRepo,
		TTL:         cfg.Session.TTL,
	})

	oauthService := service.NewOAuthService(service.OAuthServiceConfig{
		Config: service.GitHubOAuthConfig{
			ClientID:     cfg.OAuth.GitHub.ClientID,
			ClientSecret: cfg.OAuth.GitHub.ClientSecret,
			CallbackURL:  cfg.OAuth.GitHub.CallbackURL,
		},
		AuthService: authService,
	})

	// Session cookie carries a signed session id
	cookie := middleware.NewSessionCookie(middleware.SessionCookieConfig{
		Name:   cfg.Session.CookieName,
		TTL:    cfg.Session.TTL,
		Secure: cfg.Session.CookieSecure,
		Signer: signer.New(cfg.Session.Secret),
	})

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(db)
	authorHandler := handler.NewAuthorHandler(catalogService)
	bookHandler := handler.NewBookHandler(catalogService)
	authHandler := handler.NewAuthHandler(handler.AuthHandlerConfig{
		AuthService:    authService,
		SessionService: sessionService,
		Cookie:         cookie,
	})
	oauthHandler := handler.NewOAuthHandler(handler.OAuthHandlerConfig{
		OAuthService:   oauthService,
		SessionService: sessionService,
		Cookie:         cookie,
	})

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Auth endpoints (public)
	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)

	// GitHub OAuth endpoints (public, registered only when configured)
	if cfg.OAuth.GitHub.IsConfigured() {
		mux.HandleFunc("GET /github", oauthHandler.Authorize)
		mux.HandleFunc("GET /github/callback", oauthHandler.Callback)
	} else {
		slog.Info("github oauth not configured, login routes disabled")
	}

	// Auth endpoints (protected)
	sessionAuth := middleware.SessionAuth(cookie, sessionService)
	mux.Handle("POST /auth/logout", sessionAuth(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /auth/me", sessionAuth(http.HandlerFunc(authHandler.Me)))

	// Author endpoints; reads are public, writes need a session
	mux.HandleFunc("GET /authors", authorHandler.List)
	mux.HandleFunc("GET /authors/{id}", authorHandler.Get)
	mux.Handle("POST /authors", sessionAuth(http.HandlerFunc(authorHandler.Create)))
	mux.Handle("PUT /authors/{id}", sessionAuth(http.HandlerFunc(authorHandler.Update)))
	mux.Handle("DELETE /authors/{id}", sessionAuth(http.HandlerFunc(authorHandler.Delete)))

	// Book endpoints; reads are public, writes need a session
	mux.HandleFunc("GET /books", bookHandler.List)
	mux.HandleFunc("GET /books/{id}", bookHandler.Get)
	mux.Handle("POST /books", sessionAuth(http.HandlerFunc(bookHandler.Create)))
	mux.Handle("PUT /books/{id}", sessionAuth(http.HandlerFunc(bookHandler.Update)))
	mux.Handle("DELETE /books/{id}", sessionAuth(http.HandlerFunc(bookHandler.Delete)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
