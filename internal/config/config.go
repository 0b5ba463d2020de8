package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"saturn/internal/job"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the saturn runner.
type Config struct {
	Algorithm AlgorithmConfig `yaml:"algorithm"`
	Run       RunConfig       `yaml:"run"`
	Limits    LimitsConfig    `yaml:"limits"`
	Alpaca    Alpaca          `yaml:"alpaca"`
	Storage   Storage         `yaml:"storage"`
	Logging   Logging         `yaml:"logging"`
}

// AlgorithmConfig locates the algorithm artifact and bounds its
// instantiation.
type AlgorithmConfig struct {
	// Artifact is the path to the compiled plugin containing the algorithm.
	Artifact string `yaml:"artifact"`

	// TypeName selects which algorithm type to instantiate. Empty means the
	// artifact must expose exactly one.
	TypeName string `yaml:"type_name"`

	// InstantiationTimeout bounds artifact loading and construction, as a
	// duration string ("90s", "60m"). Interactive deployments set this
	// generously so a debugged run is not aborted.
	InstantiationTimeout string `yaml:"instantiation_timeout"`
}

// defaultInstantiationTimeout suits interactive use, where a run may be
// stepped through slowly.
const defaultInstantiationTimeout = time.Hour

// Timeout parses the instantiation timeout, defaulting to an hour.
func (a AlgorithmConfig) Timeout() (time.Duration, error) {
	if a.InstantiationTimeout == "" {
		return defaultInstantiationTimeout, nil
	}
	d, err := time.ParseDuration(a.InstantiationTimeout)
	if err != nil {
		return 0, fmt.Errorf("parsing instantiation_timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("instantiation_timeout must be positive, got %v", d)
	}
	return d, nil
}

// RunConfig selects the run mode and identity.
type RunConfig struct {
	// Mode is "backtest" or "live".
	Mode string `yaml:"mode"`

	// ID is the run identifier; a fresh one is generated when empty.
	ID string `yaml:"id"`

	// PaperMode keeps live runs on the paper brokerage even when Alpaca
	// credentials are configured.
	PaperMode bool `yaml:"paper_mode"`
}

// LimitsConfig caps the algorithm's resource use. Zero fields fall back to
// the permissive local defaults.
type LimitsConfig struct {
	MaxSecurities    int `yaml:"max_securities"`
	MaxSubscriptions int `yaml:"max_subscriptions"`
	MaxOrders        int `yaml:"max_orders"`
}

// RunLimits converts the configured caps, filling unset fields with the
// local defaults.
func (l LimitsConfig) RunLimits() job.RunLimits {
	limits := job.DefaultRunLimits()
	if l.MaxSecurities > 0 {
		limits.MaxSecurities = l.MaxSecurities
	}
	if l.MaxSubscriptions > 0 {
		limits.MaxSubscriptions = l.MaxSubscriptions
	}
	if l.MaxOrders > 0 {
		limits.MaxOrders = l.MaxOrders
	}
	return limits
}

// Alpaca holds credentials and endpoint for the Alpaca broker API.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	BaseURL   string `yaml:"base_url"`
}

// Storage holds paths for data persistence.
type Storage struct {
	SQLitePath string `yaml:"sqlite_path"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path, parses it into a
// Config struct, and then applies environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SATURN_ARTIFACT"); v != "" {
		cfg.Algorithm.Artifact = v
	}
	if v := os.Getenv("SATURN_ALGORITHM"); v != "" {
		cfg.Algorithm.TypeName = v
	}
	if v := os.Getenv("SATURN_MODE"); v != "" {
		cfg.Run.Mode = v
	}

	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}

	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}
	if v := os.Getenv("ALPACA_BASE_URL"); v != "" {
		cfg.Alpaca.BaseURL = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Canonical Alpaca SDK variable names take priority over the SATURN ones.
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Alpaca.APISecret = v
	}
}
