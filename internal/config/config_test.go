package config

import (
	"math"
	"os"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "saturn-config-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	if _, err := tmpFile.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	if err := tmpFile.Close(); err != nil {
		t.Fatalf("failed to close temp file: %v", err)
	}
	return tmpFile.Name()
}

func clearEnvOverrides(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SATURN_ARTIFACT", "SATURN_ALGORITHM", "SATURN_MODE",
		"SQLITE_PATH", "LOG_LEVEL",
		"ALPACA_API_KEY", "ALPACA_API_SECRET", "ALPACA_BASE_URL",
		"APCA_API_KEY_ID", "APCA_API_SECRET_KEY",
	} {
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnvOverrides(t)

	path := writeTempConfig(t, `
algorithm:
  artifact: "/opt/saturn/algos/momentum.so"
  type_name: "examples.Momentum"
  instantiation_timeout: "90s"
run:
  mode: "backtest"
  paper_mode: true
limits:
  max_securities: 500
  max_subscriptions: 1000
  max_orders: 25000
alpaca:
  api_key: "test-key"
  api_secret: "test-secret"
  base_url: "https://paper-api.alpaca.markets"
storage:
  sqlite_path: "/tmp/saturn/saturn.db"
logging:
  level: "info"
  format: "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	// -- Algorithm --
	if cfg.Algorithm.Artifact != "/opt/saturn/algos/momentum.so" {
		t.Errorf("Algorithm.Artifact = %q, want %q", cfg.Algorithm.Artifact, "/opt/saturn/algos/momentum.so")
	}
	if cfg.Algorithm.TypeName != "examples.Momentum" {
		t.Errorf("Algorithm.TypeName = %q, want %q", cfg.Algorithm.TypeName, "examples.Momentum")
	}
	timeout, err := cfg.Algorithm.Timeout()
	if err != nil {
		t.Fatalf("Timeout() returned error: %v", err)
	}
	if timeout != 90*time.Second {
		t.Errorf("Timeout() = %v, want %v", timeout, 90*time.Second)
	}

	// -- Run --
	if cfg.Run.Mode != "backtest" {
		t.Errorf("Run.Mode = %q, want %q", cfg.Run.Mode, "backtest")
	}
	if !cfg.Run.PaperMode {
		t.Error("Run.PaperMode = false, want true")
	}

	// -- Limits --
	limits := cfg.Limits.RunLimits()
	if limits.MaxSecurities != 500 {
		t.Errorf("RunLimits().MaxSecurities = %d, want %d", limits.MaxSecurities, 500)
	}
	if limits.MaxSubscriptions != 1000 {
		t.Errorf("RunLimits().MaxSubscriptions = %d, want %d", limits.MaxSubscriptions, 1000)
	}
	if limits.MaxOrders != 25000 {
		t.Errorf("RunLimits().MaxOrders = %d, want %d", limits.MaxOrders, 25000)
	}

	// -- Alpaca --
	if cfg.Alpaca.APIKey != "test-key" {
		t.Errorf("Alpaca.APIKey = %q, want %q", cfg.Alpaca.APIKey, "test-key")
	}
	if cfg.Alpaca.BaseURL != "https://paper-api.alpaca.markets" {
		t.Errorf("Alpaca.BaseURL = %q, want %q", cfg.Alpaca.BaseURL, "https://paper-api.alpaca.markets")
	}

	// -- Storage / Logging --
	if cfg.Storage.SQLitePath != "/tmp/saturn/saturn.db" {
		t.Errorf("Storage.SQLitePath = %q, want %q", cfg.Storage.SQLitePath, "/tmp/saturn/saturn.db")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestTimeoutDefaultsToAnHour(t *testing.T) {
	var a AlgorithmConfig
	timeout, err := a.Timeout()
	if err != nil {
		t.Fatalf("Timeout() returned error: %v", err)
	}
	if timeout != time.Hour {
		t.Errorf("Timeout() = %v, want %v", timeout, time.Hour)
	}
}

func TestTimeoutRejectsNonPositive(t *testing.T) {
	a := AlgorithmConfig{InstantiationTimeout: "-5s"}
	if _, err := a.Timeout(); err == nil {
		t.Error("Timeout() should reject a negative duration")
	}

	a = AlgorithmConfig{InstantiationTimeout: "soon"}
	if _, err := a.Timeout(); err == nil {
		t.Error("Timeout() should reject an unparsable duration")
	}
}

func TestRunLimitsDefaults(t *testing.T) {
	var l LimitsConfig
	limits := l.RunLimits()
	if limits.MaxSecurities != 10000 {
		t.Errorf("MaxSecurities = %d, want %d", limits.MaxSecurities, 10000)
	}
	if limits.MaxSubscriptions != 10000 {
		t.Errorf("MaxSubscriptions = %d, want %d", limits.MaxSubscriptions, 10000)
	}
	if limits.MaxOrders != math.MaxInt32 {
		t.Errorf("MaxOrders = %d, want %d", limits.MaxOrders, math.MaxInt32)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnvOverrides(t)

	path := writeTempConfig(t, `
algorithm:
  artifact: "/yaml/algo.so"
alpaca:
  api_key: "yaml-key"
  api_secret: "yaml-secret"
`)

	os.Setenv("SATURN_ARTIFACT", "/env/algo.so")
	os.Setenv("ALPACA_API_KEY", "env-key")
	defer os.Unsetenv("SATURN_ARTIFACT")
	defer os.Unsetenv("ALPACA_API_KEY")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Algorithm.Artifact != "/env/algo.so" {
		t.Errorf("Algorithm.Artifact = %q, want %q (env override)", cfg.Algorithm.Artifact, "/env/algo.so")
	}
	if cfg.Alpaca.APIKey != "env-key" {
		t.Errorf("Alpaca.APIKey = %q, want %q (env override)", cfg.Alpaca.APIKey, "env-key")
	}
	// api_secret should remain from YAML since no env override was set.
	if cfg.Alpaca.APISecret != "yaml-secret" {
		t.Errorf("Alpaca.APISecret = %q, want %q (from YAML)", cfg.Alpaca.APISecret, "yaml-secret")
	}
}
