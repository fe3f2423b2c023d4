// Command flightdesk is an airline customer support assistant for the
// terminal. Running it without a subcommand starts an interactive chat.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rickchristie/flightdesk"
	"github.com/rickchristie/flightdesk/assistant"
	"github.com/rickchristie/flightdesk/catalog"
	"github.com/rickchristie/flightdesk/config"
	"github.com/rickchristie/flightdesk/events"
	"github.com/rickchristie/flightdesk/internal/logging"
	"github.com/rickchristie/flightdesk/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

const (
	flagConfig  = "config"
	flagEnvFile = "env-file"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).root().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
}

// app carries what every command shares: resolved configuration, output
// streams and the constructors tests replace.
type app struct {
	out    io.Writer
	errOut io.Writer

	// logOut receives log lines; nil means stderr.
	logOut io.Writer

	v   *viper.Viper
	cfg *config.Config

	newModel  func(models.Settings) (flightdesk.Model, error)
	newReader func(prompt string) (lineReader, error)

	closers []io.Closer
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:       out,
		errOut:    errOut,
		v:         viper.New(),
		newModel:  models.New,
		newReader: newReadline,
	}
}

func (a *app) root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flightdesk",
		Short: "Airline customer support assistant",
		Long: "flightdesk answers flight-related questions with a chat model that can look up\n" +
			"flights in a local catalog. Without a subcommand it starts an interactive chat.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
		RunE: a.runChat,
	}

	flags := cmd.PersistentFlags()
	config.AddFlags(flags)
	flags.String(flagConfig, "",
		"Config file (default: flightdesk.yaml in ., $HOME/.flightdesk or the user config directory)")
	flags.String(flagEnvFile, ".env", "Environment file to load; missing files are ignored")

	cmd.AddCommand(
		a.chatCommand(),
		a.askCommand(),
		a.demoCommand(),
		a.flightsCommand(),
		a.toolsCommand(),
		a.evalCommand(),
	)
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	if envFile, _ := cmd.Flags().GetString(flagEnvFile); envFile != "" {
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}
	}

	configFile, _ := cmd.Flags().GetString(flagConfig)
	if err := config.Setup(a.v, cmd.Flags(), configFile); err != nil {
		return err
	}

	cfg := config.FromViper(a.v)
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	logCfg := cfg.Logging()
	logCfg.Out = a.logOut
	if err := logging.Init(logCfg); err != nil {
		return err
	}

	a.cfg = cfg
	return nil
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Msg("close failed")
		}
	}
	a.closers = nil
}

func (a *app) catalog() (*catalog.Catalog, error) {
	if a.cfg.CatalogFile == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(a.cfg.CatalogFile)
}

func (a *app) model() (flightdesk.Model, error) {
	settings, err := a.cfg.ModelSettings()
	if err != nil {
		return nil, err
	}
	return a.newModel(settings)
}

// assistant builds an Assistant from the resolved configuration. Events are
// written to the transcript file when one is configured.
func (a *app) assistant() (*assistant.Assistant, error) {
	model, err := a.model()
	if err != nil {
		return nil, err
	}
	cat, err := a.catalog()
	if err != nil {
		return nil, err
	}

	registry := events.NewRegistry()
	if a.cfg.TranscriptFile != "" {
		f, err := os.OpenFile(a.cfg.TranscriptFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open transcript file")
		}
		a.closers = append(a.closers, f)
		registry.Subscribe(events.NewTranscript(f))
	}

	bot := assistant.New(model).
		WithCatalog(cat).
		WithEvents(registry).
		WithHistoryWindow(a.cfg.HistoryWindow).
		WithHistoryCapacity(a.cfg.HistoryCapacity).
		WithMaxTokens(a.cfg.MaxTokens).
		WithTemperature(a.cfg.Temperature).
		WithRequestTimeout(a.cfg.RequestTimeout).
		WithLogger(log.Logger)

	log.Debug().
		Str("provider", a.cfg.Provider).
		Str("model", a.cfg.Model).
		Int("flights", cat.Len()).
		Msg("assistant ready")
	return bot, nil
}
