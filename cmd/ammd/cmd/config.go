package cmd

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/paw-chain/amm/api"
	"github.com/paw-chain/amm/app"
	"github.com/paw-chain/amm/app/telemetry"
)

const (
	// EnvPrefix prefixes every environment override, e.g. AMMD_API_ADDRESS.
	EnvPrefix = "AMMD"

	configFileName  = "config.toml"
	genesisFileName = "genesis.json"
)

// Config is the node configuration read from <home>/config/config.toml.
type Config struct {
	LogLevel     string
	LogFormat    string
	DBBackend    string
	Bech32Prefix string

	API       APIConfig
	Metrics   MetricsConfig
	Telemetry TelemetryConfig
}

// APIConfig configures the HTTP gateway started by `serve`.
type APIConfig struct {
	Address         string
	CORSOrigins     []string
	RateLimitRPS    int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// MetricsConfig configures the Prometheus endpoint started by `serve`.
type MetricsConfig struct {
	Enabled bool
	Address string
}

// TelemetryConfig configures OpenTelemetry tracing of delivered messages.
type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	SampleRate   float64
	Environment  string
}

// DefaultConfig returns the configuration written by `init`.
func DefaultConfig() *Config {
	apiDefaults := api.DefaultConfig()
	return &Config{
		LogLevel:     "info",
		LogFormat:    "plain",
		DBBackend:    "goleveldb",
		Bech32Prefix: app.Bech32PrefixAccAddr,
		API: APIConfig{
			Address:         net.JoinHostPort(apiDefaults.Host, apiDefaults.Port),
			CORSOrigins:     apiDefaults.CORSOrigins,
			RateLimitRPS:    apiDefaults.RateLimitRPS,
			ReadTimeout:     apiDefaults.ReadTimeout,
			WriteTimeout:    apiDefaults.WriteTimeout,
			RequestTimeout:  apiDefaults.RequestTimeout,
			ShutdownTimeout: apiDefaults.ShutdownTimeout,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Address: "127.0.0.1:36660",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			SampleRate:  1,
			Environment: "local",
		},
	}
}

// configPath returns the location of config.toml under home
func configPath(home string) string {
	return filepath.Join(home, "config", configFileName)
}

// genesisPath returns the location of genesis.json under home
func genesisPath(home string) string {
	return filepath.Join(home, "config", genesisFileName)
}

func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_format", cfg.LogFormat)
	v.SetDefault("db_backend", cfg.DBBackend)
	v.SetDefault("bech32_prefix", cfg.Bech32Prefix)
	v.SetDefault("api.address", cfg.API.Address)
	v.SetDefault("api.cors_origins", cfg.API.CORSOrigins)
	v.SetDefault("api.rate_limit_rps", cfg.API.RateLimitRPS)
	v.SetDefault("api.read_timeout", cfg.API.ReadTimeout.String())
	v.SetDefault("api.write_timeout", cfg.API.WriteTimeout.String())
	v.SetDefault("api.request_timeout", cfg.API.RequestTimeout.String())
	v.SetDefault("api.shutdown_timeout", cfg.API.ShutdownTimeout.String())
	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("metrics.address", cfg.Metrics.Address)
	v.SetDefault("telemetry.enabled", cfg.Telemetry.Enabled)
	v.SetDefault("telemetry.otlp_endpoint", cfg.Telemetry.OTLPEndpoint)
	v.SetDefault("telemetry.sample_rate", cfg.Telemetry.SampleRate)
	v.SetDefault("telemetry.environment", cfg.Telemetry.Environment)
	return v
}

// ReadConfig loads config.toml from home if present, then applies AMMD_*
// environment variables and finally any flags that were explicitly set.
func ReadConfig(home string, flags *pflag.FlagSet) (*Config, error) {
	v := newViper(DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := configPath(home)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	if flags != nil {
		for key, name := range map[string]string{
			"log_level":  FlagLogLevel,
			"log_format": FlagLogFormat,
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	return configFromViper(v)
}

func configFromViper(v *viper.Viper) (*Config, error) {
	var (
		cfg Config
		err error
	)

	if cfg.LogLevel, err = cast.ToStringE(v.Get("log_level")); err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	if cfg.LogFormat, err = cast.ToStringE(v.Get("log_format")); err != nil {
		return nil, fmt.Errorf("log_format: %w", err)
	}
	if cfg.DBBackend, err = cast.ToStringE(v.Get("db_backend")); err != nil {
		return nil, fmt.Errorf("db_backend: %w", err)
	}
	if cfg.Bech32Prefix, err = cast.ToStringE(v.Get("bech32_prefix")); err != nil {
		return nil, fmt.Errorf("bech32_prefix: %w", err)
	}

	if cfg.API.Address, err = cast.ToStringE(v.Get("api.address")); err != nil {
		return nil, fmt.Errorf("api.address: %w", err)
	}
	if cfg.API.CORSOrigins, err = cast.ToStringSliceE(v.Get("api.cors_origins")); err != nil {
		return nil, fmt.Errorf("api.cors_origins: %w", err)
	}
	if cfg.API.RateLimitRPS, err = cast.ToIntE(v.Get("api.rate_limit_rps")); err != nil {
		return nil, fmt.Errorf("api.rate_limit_rps: %w", err)
	}
	for key, dst := range map[string]*time.Duration{
		"api.read_timeout":     &cfg.API.ReadTimeout,
		"api.write_timeout":    &cfg.API.WriteTimeout,
		"api.request_timeout":  &cfg.API.RequestTimeout,
		"api.shutdown_timeout": &cfg.API.ShutdownTimeout,
	} {
		if *dst, err = cast.ToDurationE(v.Get(key)); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
	}

	if cfg.Metrics.Enabled, err = cast.ToBoolE(v.Get("metrics.enabled")); err != nil {
		return nil, fmt.Errorf("metrics.enabled: %w", err)
	}
	if cfg.Metrics.Address, err = cast.ToStringE(v.Get("metrics.address")); err != nil {
		return nil, fmt.Errorf("metrics.address: %w", err)
	}

	if cfg.Telemetry.Enabled, err = cast.ToBoolE(v.Get("telemetry.enabled")); err != nil {
		return nil, fmt.Errorf("telemetry.enabled: %w", err)
	}
	if cfg.Telemetry.OTLPEndpoint, err = cast.ToStringE(v.Get("telemetry.otlp_endpoint")); err != nil {
		return nil, fmt.Errorf("telemetry.otlp_endpoint: %w", err)
	}
	if cfg.Telemetry.SampleRate, err = cast.ToFloat64E(v.Get("telemetry.sample_rate")); err != nil {
		return nil, fmt.Errorf("telemetry.sample_rate: %w", err)
	}
	if cfg.Telemetry.Environment, err = cast.ToStringE(v.Get("telemetry.environment")); err != nil {
		return nil, fmt.Errorf("telemetry.environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the node cannot start with
func (c *Config) Validate() error {
	switch c.LogFormat {
	case "plain", "json":
	default:
		return fmt.Errorf("log_format must be plain or json, got %q", c.LogFormat)
	}
	switch c.DBBackend {
	case "goleveldb", "memdb":
	default:
		return fmt.Errorf("db_backend must be goleveldb or memdb, got %q", c.DBBackend)
	}
	if c.Bech32Prefix == "" {
		return fmt.Errorf("bech32_prefix cannot be empty")
	}
	if _, _, err := net.SplitHostPort(c.API.Address); err != nil {
		return fmt.Errorf("api.address: %w", err)
	}
	if c.API.RateLimitRPS < 0 {
		return fmt.Errorf("api.rate_limit_rps cannot be negative")
	}
	if c.Metrics.Enabled {
		if _, _, err := net.SplitHostPort(c.Metrics.Address); err != nil {
			return fmt.Errorf("metrics.address: %w", err)
		}
	}
	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		return fmt.Errorf("telemetry.sample_rate must be between 0 and 1")
	}
	return nil
}

// APIServerConfig converts the [api] section for api.NewServer.
func (c *Config) APIServerConfig() (*api.Config, error) {
	host, port, err := net.SplitHostPort(c.API.Address)
	if err != nil {
		return nil, err
	}
	return &api.Config{
		Host:            host,
		Port:            port,
		CORSOrigins:     c.API.CORSOrigins,
		RateLimitRPS:    c.API.RateLimitRPS,
		ReadTimeout:     c.API.ReadTimeout,
		WriteTimeout:    c.API.WriteTimeout,
		RequestTimeout:  c.API.RequestTimeout,
		ShutdownTimeout: c.API.ShutdownTimeout,
	}, nil
}

// TelemetryProviderConfig converts the [telemetry] section; metrics follow [metrics].
func (c *Config) TelemetryProviderConfig() telemetry.Config {
	return telemetry.Config{
		Enabled:           c.Telemetry.Enabled,
		OTLPEndpoint:      c.Telemetry.OTLPEndpoint,
		SampleRate:        c.Telemetry.SampleRate,
		Environment:       c.Telemetry.Environment,
		PrometheusEnabled: c.Metrics.Enabled,
	}
}

// WriteConfig writes cfg to <home>/config/config.toml.
func WriteConfig(home string, cfg *Config) error {
	path := configPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return newViper(cfg).WriteConfigAs(path)
}
