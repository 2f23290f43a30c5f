// Package cli contains the pennywise commands.
package cli

import (
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/pennywise-app/backend/internal/config"
	"github.com/pennywise-app/backend/internal/notify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "pennywise",
	Short: "Expense tracker with monthly budgets and spending alerts",
}

var envFile string

func init() {
	RootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", ".env", "Environment file to load. Variables already set take precedence.")
}

// Run executes the command line with args.
func Run(args []string) error {
	RootCmd.SetArgs(args)
	return RootCmd.Execute()
}

// setupLogging configures gin and the global zerolog logger from
// GIN_MODE and LOG_FORMAT.
func setupLogging() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

// loadConfig loads and validates the configuration.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newSender returns the SMTP sender when a mail server is configured.
// Without one, notifications are only logged.
func newSender(cfg *config.Config) notify.Sender {
	if cfg.SMTPHost == "" {
		log.Warn().Msg("SMTP_HOST is not set, notifications will only be logged")
		return notify.LogSender{}
	}

	return notify.SMTPSender{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	}
}
