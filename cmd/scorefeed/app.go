package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/akazakov/scorefeed/internal/db"
	"github.com/akazakov/scorefeed/internal/handlers"
	"github.com/akazakov/scorefeed/internal/logger"
	"github.com/akazakov/scorefeed/internal/repository/postgres"
	"github.com/akazakov/scorefeed/internal/service/auth"
	"github.com/akazakov/scorefeed/internal/service/auth/tokenmanager"
	"github.com/akazakov/scorefeed/internal/service/post"
	"github.com/akazakov/scorefeed/internal/service/user"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler

	logger logger.Logger
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	// Missing secret key is a programming/deployment error: abort startup,
	// don't limp along issuing unverifiable tokens
	if c.SecretKey == "" {
		return nil, errors.New("secret key is required, set SECRET_KEY or --secret-key")
	}

	// Initialize logger
	l, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger. Err: %w", err)
	}

	// Connect to the database and run migrations
	pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error while connecting to db. Err: %w", err)
	}

	// Initialize repositories
	storage := postgres.NewStorage(pool)

	// Initialize services
	tokenManager, err := tokenmanager.New(tokenmanager.Config{
		SecretKey: c.SecretKey,
		AccessTTL: c.AccessTokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("error while creating token manager. Err: %w", err)
	}

	authService, err := auth.NewService(auth.Config{}, tokenManager, storage.User())
	if err != nil {
		return nil, fmt.Errorf("error while creating auth service. Err: %w", err)
	}
	userService := user.NewService(auth.DefaultHasher, storage.User())
	postService := post.NewService(storage.Post(), storage.Like())

	mux := handlers.NewRouter(authService, userService, postService, l)

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
		logger:     l,
	}, nil
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			s.logger.Error("HTTP server shutdown timeout exceeded, forcing shutdown")
		}
		s.logger.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close connections gracefully
	s.logger.Info("Starting server", "addr", s.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}
