package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/events"
	httpapi "github.com/andreasstove999/ecommerce-system/pos-service-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/sale"
)

func main() {
	app := &cli.App{
		Name:   "pos-service",
		Usage:  "supermarket point-of-sale backend",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API (default)",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply database migrations and exit",
				Action: migrateOnly,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		logrus.WithError(err).Fatal("pos-service exited")
	}
}

func setup() (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logging.New(cfg.LogLevel, cfg.LogFormat), nil
}

func migrateOnly(c *cli.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	version, err := db.RunMigrations(cfg.DatabaseDSN, logger)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.WithField("version", version).Info("migrations complete")
	return nil
}

func serve(c *cli.Context) error {
	ctx := c.Context

	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	if cfg.RunMigrations {
		if _, err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	sqlDB := db.OpenSQL(pool)
	defer sqlDB.Close()

	store, closeStore, err := newCartStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	publisher, err := newPublisher(cfg, events.NewSequenceRepository(pool), logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.WithError(err).Warn("publisher close error")
		}
	}()

	products := catalog.NewRepository(sqlDB)
	sales := sale.NewRepository(sqlDB)
	carts := cart.NewService(store, products)

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:           logger,
		Catalog:          products,
		Carts:            carts,
		Sales:            sales,
		Checkout:         sale.NewCheckoutService(carts, sales, publisher, logger),
		DB:               pool,
		RequestTimeout:   cfg.RequestTimeout,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		DefaultSession:   cfg.DefaultSession,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"addr":         cfg.HTTPAddr,
			"cartStore":    cfg.CartStore,
			"eventsDriver": cfg.EventsDriver,
		}).Info("pos-service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("graceful shutdown error")
	}
	return nil
}

func newCartStore(ctx context.Context, cfg config.Config) (cart.Store, func(), error) {
	if cfg.CartStore != config.CartStoreRedis {
		return cart.NewMemoryStore(), func() {}, nil
	}

	client, err := cart.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	return cart.NewRedisStore(client, cfg.CartTTL), func() { _ = client.Close() }, nil
}

type saleEventPublisher interface {
	sale.CompletedPublisher
	io.Closer
}

func newPublisher(cfg config.Config, seq events.Sequencer, logger logrus.FieldLogger) (saleEventPublisher, error) {
	switch cfg.EventsDriver {
	case config.EventsDriverRabbitMQ:
		conn, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			return nil, err
		}
		p, err := events.NewRabbitPublisher(conn, seq, logger)
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("create rabbit publisher: %w", err)
		}
		return &closeBoth{Publisher: p, conn: conn}, nil
	case config.EventsDriverKafka:
		return events.NewKafkaPublisher(cfg.KafkaBrokers, seq, logger), nil
	default:
		return events.NewNoopPublisher(logger), nil
	}
}

// closeBoth releases the AMQP channel before its connection.
type closeBoth struct {
	*events.Publisher
	conn io.Closer
}

func (c *closeBoth) Close() error {
	return errors.Join(c.Publisher.Close(), c.conn.Close())
}
