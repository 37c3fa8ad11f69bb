package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mclang/kiho-wt-puncher/internal/logger"
)

// ErrCreated signals that no configuration file existed, so a sample file was
// written for the user to edit. The run must stop: the sample holds a
// placeholder API key and the tool never talks to the API with it.
var ErrCreated = errors.New("sample configuration created")

// PlaceholderAPIKey is the api_key value written into the sample file.
// Load rejects it so a freshly created config cannot be used as-is.
const PlaceholderAPIKey = "Ask API Key from administrator"

// defaultAPIURL is the production Kiho v3 punch endpoint.
// See http://developers.kiho.fi/api for the API documentation.
const defaultAPIURL = "https://v3.kiho.fi/api/v1/punch"

// Config holds everything read from the TOML configuration file.
// It is loaded once per invocation and treated as immutable afterwards.
type Config struct {
	Title             string            `mapstructure:"title"`
	APIKey            string            `mapstructure:"api_key"`
	APIURL            string            `mapstructure:"api_url"`
	TimeoutSeconds    int               `mapstructure:"timeout_seconds"`
	DefaultCostCentre int               `mapstructure:"default_cost_centre"`
	RecurringTasks    []string          `mapstructure:"recurring_tasks"`
	CostCentres       map[string]string `mapstructure:"cost_centres"`
}

// DefaultPath returns the per-user configuration file location:
// $XDG_CONFIG_HOME/kiho-wt-puncher/config.toml, falling back to
// ~/.config/kiho-wt-puncher/config.toml.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, "kiho-wt-puncher", "config.toml"), nil
}

// Load reads and validates the TOML configuration file at the given path.
//
// When the file does not exist, Load writes a sample configuration there and
// returns ErrCreated so the caller can stop with the distinct "config
// created" exit code instead of a hard failure.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	setDefaults(v)

	logger.Verbose("Loading configuration from '%s'\n", path)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			if werr := writeSample(v, path); werr != nil {
				return nil, werr
			}
			return nil, fmt.Errorf("%w at '%s' - please fill in your API key", ErrCreated, path)
		}
		return nil, fmt.Errorf("reading config file '%s': %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config file '%s': %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file '%s': %w", path, err)
	}
	logger.Debug("[DEBUG] Loaded configuration: %+v\n", cfg)
	return &cfg, nil
}

// setDefaults seeds the viper instance with the sample configuration values.
// These double as defaults for optional fields when a real file is loaded.
func setDefaults(v *viper.Viper) {
	v.SetDefault("title", "Configuration file for 'Kiho Worktime Puncher'")
	v.SetDefault("api_key", PlaceholderAPIKey)
	v.SetDefault("api_url", defaultAPIURL)
	v.SetDefault("timeout_seconds", 30)
	v.SetDefault("default_cost_centre", 0)
	v.SetDefault("recurring_tasks", []string{
		"Group A | Dummy task A-1",
		"Group A | Dummy task A-2",
		"Group B | Dummy task B-1",
		"Misc task description I",
		"Misc task description II",
		"Misc task description III",
	})
	v.SetDefault("cost_centres", map[string]string{
		"000000": "Example default customer cost centre",
	})
}

// writeSample creates the configuration directory and writes the defaults as
// a sample file the user can edit.
func writeSample(v *viper.Viper, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory for '%s': %w", path, err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing sample config '%s': %w", path, err)
	}
	logger.Info("[INFO] Sample configuration written to %s\n", path)
	return nil
}

// validate rejects configurations the core must never run with.
func (c *Config) validate() error {
	if c.APIKey == "" || c.APIKey == PlaceholderAPIKey {
		return errors.New("api_key is missing - ask the API key from your administrator")
	}
	parsed, err := url.Parse(c.APIURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api_url %q is not a valid URL", c.APIURL)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}
