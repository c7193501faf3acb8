// Package cli wires the commands of the poultryctl binary.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/poultrypro/poultryctl/internal/apperr"
	"github.com/poultrypro/poultryctl/internal/config"
	"github.com/poultrypro/poultryctl/internal/logging"
	"github.com/poultrypro/poultryctl/internal/session"
	"github.com/poultrypro/poultryctl/internal/storage"
	"github.com/poultrypro/poultryctl/pkg/client"
)

var (
	flagLogLevel string
	flagPretty   bool
)

// SetVersion sets the version information from build-time ldflags.
func SetVersion(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "poultryctl",
	Short: "PoultryPro farm management client",
	Long: `poultryctl talks to the PoultryPro API from the terminal: sign in,
inspect your profile, and manage the locally persisted session data.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Minimum log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagPretty, "pretty", false, "Human-friendly log output")
}

// app bundles everything a command needs. Built per invocation so each
// command sees fresh configuration.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	store    *storage.Store
	client   *client.Client
	errs     *apperr.Classifier
	sessions *session.Controller
}

func newApp(cmd *cobra.Command) (*app, error) {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagPretty {
		cfg.LogPretty = true
	}

	log := logging.New(logging.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	store, err := storage.Open(cfg.StorePath(), log)
	if err != nil {
		return nil, err
	}

	api := client.New(cfg.APIBaseURL, cfg.APIVersion, log)
	errs := apperr.New(log)
	errs.OnNotify(func(e *apperr.AppError) {
		fmt.Fprintln(cmd.ErrOrStderr(), apperr.UserMessage(e))
	})

	a := &app{
		cfg:      cfg,
		log:      log,
		store:    store,
		client:   api,
		errs:     errs,
		sessions: session.New(api, store, errs, log),
	}
	a.sessions.Restore(ctx)
	return a, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("closing store")
	}
}
