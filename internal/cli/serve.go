package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pennywise-app/backend/internal/auth"
	"github.com/pennywise-app/backend/internal/budget"
	"github.com/pennywise-app/backend/internal/config"
	v1 "github.com/pennywise-app/backend/internal/controllers/v1"
	"github.com/pennywise-app/backend/internal/ledger"
	"github.com/pennywise-app/backend/internal/models"
	"github.com/pennywise-app/backend/internal/notify"
	"github.com/pennywise-app/backend/internal/router"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:          "serve",
	Short:        "Start the API server",
	RunE:         serveCmdF,
	SilenceUsage: true,
}

func init() {
	RootCmd.AddCommand(serveCmd)
	RootCmd.RunE = serveCmdF
	RootCmd.SilenceUsage = true
}

func serveCmdF(_ *cobra.Command, _ []string) error {
	setupLogging()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := connectDatabase(cfg); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	queue, closeQueue, err := newQueue(ctx, g, cfg)
	if err != nil {
		return err
	}
	defer closeQueue()

	locker, closeLocker, err := newLocker(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLocker()

	co := v1.Controller{
		Ledger:      ledger.NewService(budget.NewEvaluator(queue), locker),
		Tokens:      auth.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, cfg.PasswordResetTTL),
		Queue:       queue,
		Allowlist:   auth.ParseAllowlist(cfg.RegistrationAllowlist),
		FrontendURL: cfg.FrontendURL,
	}

	r, teardown, err := router.Config(cfg.APIURL)
	defer teardown()
	if err != nil {
		return err
	}
	router.AttachRoutes(co, r.Group(cfg.APIURL.Path))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// connectDatabase connects to PostgreSQL when DB_HOST is set and to the
// SQLite file at DB_PATH otherwise.
func connectDatabase(cfg *config.Config) error {
	if cfg.DBHost != "" {
		log.Info().Str("host", cfg.DBHost).Str("database", cfg.DBName).Msg("using PostgreSQL")
		return models.ConnectPostgres(cfg.PostgresDSN())
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm); err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}

	log.Info().Str("path", cfg.DBPath).Msg("using SQLite")
	return models.Connect(cfg.DBPath)
}

// newQueue returns the notification queue. With AMQP_URL set, messages are
// published to the broker for the notify-worker command. Otherwise an
// in-process worker pool delivers them and runs in g.
func newQueue(ctx context.Context, g *errgroup.Group, cfg *config.Config) (notify.Queue, func(), error) {
	if cfg.AMQPURL != "" {
		client, err := notify.NewAMQPClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return nil, nil, err
		}

		log.Info().Str("exchange", cfg.AMQPExchange).Str("queue", cfg.AMQPQueue).Msg("publishing notifications via AMQP")
		return client, func() {
			if err := client.Close(); err != nil {
				log.Warn().Err(err).Msg("closing AMQP connection")
			}
		}, nil
	}

	worker := notify.NewWorker(newSender(cfg), cfg.NotifyQueueSize, cfg.NotifyWorkers)
	g.Go(func() error {
		return worker.Run(ctx)
	})

	return worker, worker.Close, nil
}

// newLocker returns the Redis lock when REDIS_URL is set, which allows
// running several API instances. Otherwise locks are held in memory.
func newLocker(ctx context.Context, cfg *config.Config) (budget.Locker, func(), error) {
	if cfg.RedisURL == "" {
		return budget.NewKeyedMutex(), func() {}, nil
	}

	client, err := budget.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}

	log.Info().Msg("using Redis for budget locks")
	return budget.NewRedisLocker(client), func() {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Msg("closing Redis connection")
		}
	}, nil
}
