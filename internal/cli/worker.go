package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/pennywise-app/backend/internal/notify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errNoBroker = errors.New("AMQP_URL must be set to run the notification worker")

var notifyWorkerCmd = &cobra.Command{
	Use:          "notify-worker",
	Short:        "Deliver notifications from the AMQP queue",
	RunE:         notifyWorkerCmdF,
	SilenceUsage: true,
}

func init() {
	RootCmd.AddCommand(notifyWorkerCmd)
}

func notifyWorkerCmdF(_ *cobra.Command, _ []string) error {
	setupLogging()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.AMQPURL == "" {
		return errNoBroker
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := notify.NewAMQPClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Msg("closing AMQP connection")
		}
	}()

	return client.Consume(ctx, newSender(cfg))
}
