package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	cartapp "github.com/storelane/shopcore/internal/cart/app"
	carthttp "github.com/storelane/shopcore/internal/cart/http"
	cartpg "github.com/storelane/shopcore/internal/cart/infra/postgres"

	catalogapp "github.com/storelane/shopcore/internal/catalog/app"
	cataloghttp "github.com/storelane/shopcore/internal/catalog/http"
	catalogpg "github.com/storelane/shopcore/internal/catalog/infra/postgres"

	identityapp "github.com/storelane/shopcore/internal/identity/app"
	identityhttp "github.com/storelane/shopcore/internal/identity/http"
	identitypg "github.com/storelane/shopcore/internal/identity/infra/postgres"
	identityredis "github.com/storelane/shopcore/internal/identity/infra/redis"

	orderapp "github.com/storelane/shopcore/internal/order/app"
	orderhttp "github.com/storelane/shopcore/internal/order/http"
	orderadapter "github.com/storelane/shopcore/internal/order/infra/adapter"
	orderkafka "github.com/storelane/shopcore/internal/order/infra/kafka"
	orderpg "github.com/storelane/shopcore/internal/order/infra/postgres"
	orderredis "github.com/storelane/shopcore/internal/order/infra/redis"

	"github.com/storelane/shopcore/pkg/config"
	"github.com/storelane/shopcore/pkg/logger"
	"github.com/storelane/shopcore/pkg/postgres"
	"github.com/storelane/shopcore/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "api", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	// Money fields serialize as JSON numbers, matching the API shape.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	db := mustDB(log, cfg)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
	}

	// Catalog
	productRepo := catalogpg.NewProductRepo(db)
	catalogSvc := catalogapp.NewService(productRepo)

	// Cart
	cartRepo := cartpg.NewCartRepo(db)
	cartSvc := cartapp.NewService(cartRepo)

	// Identity
	userRepo := identitypg.NewUserRepo(db)
	identitySvc := identityapp.NewService(userRepo, cfg.JWTSecret)
	if rdb != nil {
		identitySvc = identitySvc.WithTokenStore(identityredis.NewTokenStore(rdb))
	}

	// Order core
	store := orderpg.NewStore(db)
	cartReader := orderadapter.NewCartServiceReader(cartSvc)
	orderSvc := orderapp.NewService(store, cartReader, log)
	if len(cfg.KafkaBrokers) > 0 {
		pub := orderkafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer pub.Close()
		orderSvc = orderSvc.WithEvents(pub)
	}
	if rdb != nil {
		orderSvc = orderSvc.WithIdempotencyGuard(orderredis.NewGuard(rdb))
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status))
			return nil
		},
	}))
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(20),
			Burst:     60,
			ExpiresIn: 3 * time.Minute,
		})))

	e.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	public := e.Group("")
	authed := e.Group("", identityhttp.Middleware(cfg.JWTSecret))

	identityhttp.NewHandler(identitySvc).Register(public)
	cataloghttp.NewHandler(catalogSvc).Register(public, authed)
	carthttp.NewHandler(cartSvc).Register(authed)
	orderhttp.NewHandler(orderSvc).Register(authed)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	go func() {
		log.Info("http server starting", slog.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := e.Shutdown(stopCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}
	log.Info("bye")
}

func mustDB(log *slog.Logger, cfg config.Config) *gorm.DB {
	db, err := postgres.Open(postgres.Config{
		Host:    cfg.PGHost,
		Port:    cfg.PGPort,
		User:    cfg.PGUser,
		Pass:    cfg.PGPass,
		DB:      cfg.PGName,
		SSLMode: cfg.PGSSLMode,
	})
	if err != nil {
		log.Error("db open failed", slog.Any("err", err))
		os.Exit(1)
	}
	if err := postgres.Migrate(db); err != nil {
		log.Error("db migrate failed", slog.Any("err", err))
		os.Exit(1)
	}
	return db
}
