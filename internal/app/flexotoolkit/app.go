// Package flexotoolkit собирает зависимости HTTP сервиса и управляет его жизненным циклом.
package flexotoolkit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/flexo-toolkit/internal/authprovider"
	"github.com/magabrotheeeer/flexo-toolkit/internal/authprovider/google"
	"github.com/magabrotheeeer/flexo-toolkit/internal/authprovider/usersservice"
	"github.com/magabrotheeeer/flexo-toolkit/internal/cache"
	"github.com/magabrotheeeer/flexo-toolkit/internal/config"
	"github.com/magabrotheeeer/flexo-toolkit/internal/lib/jwt"
	"github.com/magabrotheeeer/flexo-toolkit/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/flexo-toolkit/internal/lib/sl"
	"github.com/magabrotheeeer/flexo-toolkit/internal/metrics"
	"github.com/magabrotheeeer/flexo-toolkit/internal/migrations"
	"github.com/magabrotheeeer/flexo-toolkit/internal/paymentprovider"
	"github.com/magabrotheeeer/flexo-toolkit/internal/services/account"
	"github.com/magabrotheeeer/flexo-toolkit/internal/services/auth"
	"github.com/magabrotheeeer/flexo-toolkit/internal/storage"
)

const (
	shutdownTimeout = 15 * time.Second
	amqpRetries     = 5
	amqpRetryDelay  = 2 * time.Second
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache

	amqpConn  *amqp.Connection
	publisher *rabbitmq.Publisher
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "flexotoolkit.New"

	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app := &App{
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}

	var publisher account.EventPublisher
	if cfg.Events.Enabled {
		if err := app.connectEvents(cfg.Events); err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		publisher = app.publisher
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	accounts := account.New(db, publisher, logger).WithProvisionedCounter(m.UsersProvisioned)
	authService := auth.New(
		newAuthProvider(cfg.Auth),
		cacheRedis,
		accounts,
		jwt.NewJWTMaker(cfg.Session.JWTSecretKey, cfg.Session.TTL),
		cfg.Session.TTL,
		logger,
	)
	payments := paymentprovider.NewClient(
		cfg.LemonSqueezy.APIURL,
		cfg.LemonSqueezy.APIKey,
		cfg.LemonSqueezy.StoreID,
		cfg.LemonSqueezy.VariantID,
		cfg.LemonSqueezy.Timeout,
	)

	router := NewRouter(Deps{
		Config:   cfg,
		Logger:   logger,
		Metrics:  m,
		Registry: reg,
		Auth:     authService,
		Accounts: accounts,
		Payments: payments,
		Storage:  db,
		Cache:    cacheRedis,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func newAuthProvider(cfg config.Auth) authprovider.Provider {
	if cfg.Provider == config.AuthProviderGoogle {
		return google.New(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.Timeout)
	}
	return usersservice.New(cfg.UsersServiceURL, cfg.UsersServiceAPIKey, cfg.Timeout)
}

func (a *App) connectEvents(cfg config.Events) error {
	conn, err := rabbitmq.Connect(cfg.AMQPURL, amqpRetries, amqpRetryDelay)
	if err != nil {
		return err
	}
	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.AccountQueues())
	if err != nil {
		_ = conn.Close()
		return err
	}
	a.amqpConn = conn
	a.publisher = rabbitmq.NewPublisher(ch, cfg.Exchange)
	a.logger.Info("account events enabled", slog.String("exchange", cfg.Exchange))
	return nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("failed to close amqp channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Warn("failed to close amqp connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis", sl.Err(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close database", sl.Err(err))
		}
	}
}
