// Package config resolves flightdesk settings from, in increasing precedence,
// flag defaults, a YAML config file, the environment (including a .env file)
// and explicitly set command-line flags.
//
// Environment variables use the FLIGHTDESK_ prefix with dashes turned into
// underscores (FLIGHTDESK_HISTORY_WINDOW). OPENAI_API_KEY is accepted as a
// fallback for the API key.
package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rickchristie/flightdesk"
	"github.com/rickchristie/flightdesk/internal/logging"
	"github.com/rickchristie/flightdesk/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys.
const (
	KeyProvider        = "provider"
	KeyAPIKey          = "api-key"
	KeyBaseURL         = "base-url"
	KeyModel           = "model"
	KeyMaxTokens       = "max-tokens"
	KeyTemperature     = "temperature"
	KeyHistoryWindow   = "history-window"
	KeyHistoryCapacity = "history-capacity"
	KeyRequestTimeout  = "request-timeout"
	KeyCatalogFile     = "catalog-file"
	KeyTranscriptFile  = "transcript-file"
	KeyLogLevel        = "log-level"
	KeyLogFormat       = "log-format"
	KeyLogFile         = "log-file"
	KeyWithCaller      = "with-caller"
)

// EnvPrefix is the prefix of every environment variable read.
const EnvPrefix = "flightdesk"

// ErrMissingAPIKey is returned when a model is needed and no key is set.
var ErrMissingAPIKey = errors.New(
	"no API key configured: set FLIGHTDESK_API_KEY or OPENAI_API_KEY, or pass --api-key",
)

// Config is the resolved configuration.
type Config struct {
	Provider        string
	APIKey          string
	BaseURL         string
	Model           string
	MaxTokens       int
	Temperature     float64
	HistoryWindow   int
	HistoryCapacity int
	RequestTimeout  time.Duration
	CatalogFile     string
	TranscriptFile  string
	LogLevel        string
	LogFormat       string
	LogFile         string
	WithCaller      bool
}

// AddFlags registers every setting as a flag with its default value.
func AddFlags(flags *pflag.FlagSet) {
	flags.String(KeyProvider, string(models.ProviderOpenAI),
		"Model provider: openai, openai-native or github")
	flags.String(KeyAPIKey, "", "API key for the provider")
	flags.String(KeyBaseURL, "", "Override the provider endpoint")
	flags.String(KeyModel, flightdesk.DefaultModel, "Chat model name")
	flags.Int(KeyMaxTokens, flightdesk.DefaultMaxTokens, "Maximum tokens per completion")
	flags.Float64(KeyTemperature, flightdesk.DefaultTemperature, "Sampling temperature")
	flags.Int(KeyHistoryWindow, flightdesk.DefaultHistoryWindow,
		"Messages sent per request, counting the new user message")
	flags.Int(KeyHistoryCapacity, 0, "Maximum messages kept in history (0 = unbounded)")
	flags.Duration(KeyRequestTimeout, 0, "Timeout for answering one message (0 = none)")
	flags.String(KeyCatalogFile, "", "YAML flight catalog (default: built-in sample flights)")
	flags.String(KeyTranscriptFile, "", "Append a YAML event transcript to this file")
	flags.String(KeyLogLevel, "info", "Log level: trace, debug, info, warn, error")
	flags.String(KeyLogFormat, "text", "Log format: text or json")
	flags.String(KeyLogFile, "", "Also write logs to this file, rotated")
	flags.Bool(KeyWithCaller, false, "Log caller information")
}

// LoadDotEnv loads environment variables from the given files, or ".env" when
// none are given. Missing files are ignored; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return errors.Wrapf(err, "failed to load %s", f)
		}
	}
	return nil
}

// Setup prepares v to read the config file, the environment and the flags in
// flagSet. configFile, when set, must exist; otherwise flightdesk.yaml is
// looked up in ".", $HOME/.flightdesk and the user config directory.
func Setup(v *viper.Viper, flagSet *pflag.FlagSet, configFile string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyAPIKey, "FLIGHTDESK_API_KEY", "OPENAI_API_KEY"); err != nil {
		return errors.Wrap(err, "failed to bind api key environment")
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("flightdesk")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.flightdesk")
		if xdg, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(xdg, "flightdesk"))
		}
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		// No config file; flags and environment only.
	} else if err != nil {
		return errors.Wrap(err, "failed to read config file")
	}

	if flagSet != nil {
		if err := v.BindPFlags(flagSet); err != nil {
			return errors.Wrap(err, "failed to bind flags")
		}
	}

	log.Debug().Str("config", v.ConfigFileUsed()).Msg("Loaded configuration")
	return nil
}

// FromViper reads a Config out of v.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Provider:        v.GetString(KeyProvider),
		APIKey:          v.GetString(KeyAPIKey),
		BaseURL:         v.GetString(KeyBaseURL),
		Model:           v.GetString(KeyModel),
		MaxTokens:       v.GetInt(KeyMaxTokens),
		Temperature:     v.GetFloat64(KeyTemperature),
		HistoryWindow:   v.GetInt(KeyHistoryWindow),
		HistoryCapacity: v.GetInt(KeyHistoryCapacity),
		RequestTimeout:  v.GetDuration(KeyRequestTimeout),
		CatalogFile:     v.GetString(KeyCatalogFile),
		TranscriptFile:  v.GetString(KeyTranscriptFile),
		LogLevel:        v.GetString(KeyLogLevel),
		LogFormat:       v.GetString(KeyLogFormat),
		LogFile:         v.GetString(KeyLogFile),
		WithCaller:      v.GetBool(KeyWithCaller),
	}
}

// Validate rejects inconsistent values. A missing API key is not an error
// here since catalog commands run without one; see ModelSettings.
func (c *Config) Validate() error {
	if _, err := models.ParseProvider(c.Provider); err != nil {
		return err
	}
	if c.MaxTokens < 1 {
		return errors.Errorf("%s must be positive, got %d", KeyMaxTokens, c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.Errorf("%s must be between 0 and 2, got %g", KeyTemperature, c.Temperature)
	}
	if c.HistoryWindow < 1 {
		return errors.Errorf("%s must be at least 1, got %d", KeyHistoryWindow, c.HistoryWindow)
	}
	if c.HistoryCapacity < 0 {
		return errors.Errorf("%s must not be negative, got %d", KeyHistoryCapacity, c.HistoryCapacity)
	}
	if c.HistoryCapacity > 0 && c.HistoryCapacity < c.HistoryWindow {
		return errors.Errorf("%s (%d) must be 0 or at least %s (%d)",
			KeyHistoryCapacity, c.HistoryCapacity, KeyHistoryWindow, c.HistoryWindow)
	}
	if c.RequestTimeout < 0 {
		return errors.Errorf("%s must not be negative, got %s", KeyRequestTimeout, c.RequestTimeout)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return errors.Errorf("%s must be text or json, got %q", KeyLogFormat, c.LogFormat)
	}
	return nil
}

// ModelSettings returns the model adapter settings, or ErrMissingAPIKey.
func (c *Config) ModelSettings() (models.Settings, error) {
	provider, err := models.ParseProvider(c.Provider)
	if err != nil {
		return models.Settings{}, err
	}
	if c.APIKey == "" {
		return models.Settings{}, ErrMissingAPIKey
	}
	return models.Settings{
		Provider: provider,
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
		Model:    c.Model,
	}, nil
}

// Logging returns the logger settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		File:       c.LogFile,
		WithCaller: c.WithCaller,
	}
}
