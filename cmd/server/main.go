package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/api"
	"github.com/d60-Lab/yatube/internal/api/handler"
	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/cache"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/internal/storage"
	"github.com/d60-Lab/yatube/pkg/database"
	"github.com/d60-Lab/yatube/pkg/logger"
	"github.com/d60-Lab/yatube/pkg/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flushSentry, err := telemetry.InitSentry(cfg.Sentry)
	if err != nil {
		return err
	}
	defer func() { _ = flushSentry(context.Background()) }()
	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	db, err := database.InitDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()
	if err := database.Migrate(db); err != nil {
		return err
	}

	pages, closeCache, err := newPageCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	images := storage.NewLocalImageStore(cfg.Media.Root, cfg.Media.URLPrefix)

	svc := handler.Services{
		Feed:         service.NewFeedService(postRepo, groupRepo, userRepo, followRepo, cfg.Posts.PageSize),
		Posts:        service.NewPostService(postRepo, groupRepo, commentRepo, images),
		Comments:     service.NewCommentService(postRepo, commentRepo),
		Relationship: service.NewRelationshipService(userRepo, followRepo, cfg.Follow.AllowSelf),
		Users:        service.NewUserService(userRepo),
	}
	secret := cfg.Auth.JWTSecret
	if secret == "" {
		// 非 release 模式允许不配置，会话在重启后失效
		secret = uuid.NewString()
		logger.Warn("auth.jwt_secret not set, using an ephemeral secret", zap.String("mode", cfg.Server.Mode))
	}
	tokens := auth.NewTokenManager(secret, cfg.Auth.TokenTTL)
	h := handler.NewHandler(svc, tokens, images, handler.Options{
		CookieName:   cfg.Auth.CookieName,
		LoginURL:     cfg.Auth.LoginURL,
		SecureCookie: cfg.Auth.SecureCookie,
	})
	router := api.NewRouter(api.Deps{Config: cfg, Handler: h, Tokens: tokens, Users: svc.Users, Pages: pages})

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newPageCache(ctx context.Context, cfg *config.Config) (cache.Store, func(), error) {
	if cfg.Cache.Driver != "redis" {
		return cache.NewMemory(cache.WithMaxEntries(cfg.Cache.MaxEntries)), func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
	}
	logger.Info("page cache backed by redis", zap.String("addr", cfg.Redis.Addr))
	return cache.NewRedis(client, "yatube:"), func() { _ = client.Close() }, nil
}
