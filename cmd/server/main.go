package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/iliyamo/geobites/internal/config"
	"github.com/iliyamo/geobites/internal/database"
	"github.com/iliyamo/geobites/internal/filestore"
	"github.com/iliyamo/geobites/internal/handler"
	"github.com/iliyamo/geobites/internal/logging"
	"github.com/iliyamo/geobites/internal/menu"
	"github.com/iliyamo/geobites/internal/queue"
	"github.com/iliyamo/geobites/internal/repository"
	"github.com/iliyamo/geobites/internal/router"
	"github.com/iliyamo/geobites/internal/service"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer closeStores()

	catalog, err := menu.Load(cfg.MenuFile)
	if err != nil {
		log.Fatalf("menu: %v", err)
	}

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		logger.Info("redis unavailable; rate limiting and caching disabled")
	} else {
		defer rdb.Close()
	}

	var events service.EventPublisher = service.NopPublisher{}
	if cfg.QueueEnabled {
		events = service.AMQPPublisher{URL: cfg.RabbitMQURL}
		go func() {
			if err := queue.StartOrderConsumer(ctx, cfg.RabbitMQURL, cfg.OrderLogPath); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("order consumer stopped", "err", err)
			}
		}()
	}

	ttl := time.Duration(cfg.SessionTTLDays) * 24 * time.Hour
	authSvc := service.NewAuthService(stores.Users,
		service.OwnerCredentials{Email: cfg.OwnerEmail, Password: cfg.OwnerPassword}, cfg.BcryptCost)
	orderSvc := service.NewOrderService(stores.Carts, stores.Orders, events, logger)
	contactSvc := service.NewContactService(stores.Contacts)

	e := router.New(cfg, router.Handlers{
		Auth:    handler.NewAuthHandler(authSvc, cfg.JWTSecret, ttl, cfg.IsProduction()),
		Cart:    handler.NewCartHandler(stores.Carts, catalog),
		Orders:  handler.NewOrderHandler(orderSvc),
		Contact: handler.NewContactHandler(contactSvc),
		Owner:   handler.NewOwnerHandler(orderSvc, contactSvc),
		Menu:    handler.Menu(catalog),
		Health:  stores.Health,
	}, rdb, logger)

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", "addr", addr, "env", cfg.Env, "storage", cfg.StorageDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}

// openStores selects the MySQL or JSON file backend.
func openStores(ctx context.Context, cfg config.Config) (repository.Stores, func(), error) {
	if cfg.StorageDriver != config.StorageMySQL {
		s, err := filestore.Open(cfg.DataDir)
		return s, func() {}, err
	}
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return repository.Stores{}, nil, err
	}
	if cfg.DBMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return repository.Stores{}, nil, err
		}
	}
	return repository.NewMySQLStores(db), func() { db.Close() }, nil
}
