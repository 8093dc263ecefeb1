package commands

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"foodorder/internal/auth"
	"foodorder/internal/authz"
	"foodorder/internal/cache"
	"foodorder/internal/config"
	"foodorder/internal/db"
	"foodorder/internal/repository"
	"foodorder/internal/service"
)

// app holds the wired dependencies shared by serve and seed.
type app struct {
	db    *gorm.DB
	cache *cache.Client

	auth        service.AuthService
	users       service.UserService
	restaurants service.RestaurantService
	orders      service.OrderService
}

func openDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		_ = db.Close(gormDB)
		return nil, err
	}
	logger.Info("database ready", slog.String("driver", cfg.DBDriver))
	return gormDB, nil
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	gormDB, err := openDB(cfg, logger)
	if err != nil {
		return nil, err
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if cacheClient == nil {
		logger.Warn("REDIS_ADDR not set, logout will fail")
	} else if err := cacheClient.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, logout and token checks will fail until it recovers", slog.Any("error", err))
	}

	store := repository.NewStore(gormDB)
	guard := authz.NewGuard(nil)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)

	return &app{
		db:          gormDB,
		cache:       cacheClient,
		auth:        service.NewAuthService(store, jwtService, auth.NewTokenStore(cacheClient)),
		users:       service.NewUserService(store, guard),
		restaurants: service.NewRestaurantService(store, guard),
		orders:      service.NewOrderService(store, guard, cfg.OrderCancelWindow),
	}, nil
}

func (a *app) Close() {
	if err := a.cache.Close(); err != nil {
		slog.Warn("close redis", slog.Any("error", err))
	}
	if err := db.Close(a.db); err != nil {
		slog.Warn("close database", slog.Any("error", err))
	}
}
