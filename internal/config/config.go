// Package config handles loading and validating the playcue configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for the playcue daemon.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Transports  TransportsConfig  `mapstructure:"transports"`
	Library     LibraryConfig     `mapstructure:"library"`
	Interpreter InterpreterConfig `mapstructure:"interpreter"`
	Resolver    ResolverConfig    `mapstructure:"resolver"`
	Targets     map[string]Target `mapstructure:"targets"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig holds the health check server settings.
type ServerConfig struct {
	HealthPort int `mapstructure:"health_port"`
}

// TransportsConfig holds the configuration for each transport layer.
type TransportsConfig struct {
	GRPC GRPCConfig `mapstructure:"grpc"`
	HTTP HTTPConfig `mapstructure:"http"`
	MQTT MQTTConfig `mapstructure:"mqtt"`
}

// GRPCConfig configures the gRPC transport.
type GRPCConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// MQTTConfig configures the MQTT transport.
type MQTTConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Broker      string `mapstructure:"broker"`
	Topic       string `mapstructure:"topic"`        // commands are read from this topic
	ReplyPrefix string `mapstructure:"reply_prefix"` // results go to <reply_prefix>/<source> unless reply_to is set
	ClientID    string `mapstructure:"client_id"`
	QoS         int    `mapstructure:"qos"`
}

// LibraryConfig selects and configures the library lookup backend.
type LibraryConfig struct {
	Backend string        `mapstructure:"backend"` // "spotify" or "static"
	Static  StaticConfig  `mapstructure:"static"`
	Spotify SpotifyConfig `mapstructure:"spotify"`
}

// StaticConfig points at a YAML catalog file.
type StaticConfig struct {
	Path string `mapstructure:"path"`
}

// SpotifyConfig holds Spotify Web API settings.
type SpotifyConfig struct {
	APIURL        string        `mapstructure:"api_url"`
	AccessToken   string        `mapstructure:"access_token"`
	Market        string        `mapstructure:"market"`         // ISO 3166-1 alpha-2, optional
	SearchLimit   int           `mapstructure:"search_limit"`   // results per search, max 50
	PlaylistPages int           `mapstructure:"playlist_pages"` // pages of 50 playlists to scan
	Timeout       time.Duration `mapstructure:"timeout"`
}

// InterpreterConfig tunes text normalization.
type InterpreterConfig struct {
	FillerWords []string `mapstructure:"filler_words"`
}

// ResolverConfig calibrates fuzzy name resolution.
type ResolverConfig struct {
	Threshold       float64 `mapstructure:"threshold"`
	Margin          float64 `mapstructure:"margin"`
	MaxAlternatives int     `mapstructure:"max_alternatives"`
}

// Target defines a downstream executor that receives built actions.
type Target struct {
	Endpoint string `mapstructure:"endpoint"`
	Protocol string `mapstructure:"protocol"`
	Token    string `mapstructure:"token"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./playcue.yaml, ./configs/playcue.yaml, /etc/playcue/playcue.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("transports.grpc.enabled", false)
	v.SetDefault("transports.grpc.port", 50051)
	v.SetDefault("transports.http.enabled", true)
	v.SetDefault("transports.http.port", 8080)
	v.SetDefault("transports.mqtt.enabled", false)
	v.SetDefault("transports.mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("transports.mqtt.topic", "playcue/commands")
	v.SetDefault("transports.mqtt.reply_prefix", "playcue/results")
	v.SetDefault("transports.mqtt.client_id", "playcue")
	v.SetDefault("transports.mqtt.qos", 1)
	v.SetDefault("library.backend", "spotify")
	v.SetDefault("library.static.path", "configs/library.yaml")
	v.SetDefault("library.spotify.api_url", "https://api.spotify.com/v1")
	v.SetDefault("library.spotify.access_token", "")
	v.SetDefault("library.spotify.market", "")
	v.SetDefault("library.spotify.search_limit", 10)
	v.SetDefault("library.spotify.playlist_pages", 4)
	v.SetDefault("library.spotify.timeout", "10s")
	v.SetDefault("interpreter.filler_words", []string{"please", "spotify", "hey", "ok", "okay"})
	v.SetDefault("resolver.threshold", 0.85)
	v.SetDefault("resolver.margin", 0.05)
	v.SetDefault("resolver.max_alternatives", 5)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("playcue")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/playcue")
	}

	// Environment variables: PLAYCUE_SERVER_HEALTH_PORT, PLAYCUE_LIBRARY_BACKEND, etc.
	v.SetEnvPrefix("PLAYCUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional: env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Resolve env var references in sensitive fields (e.g., "${SPOTIFY_ACCESS_TOKEN}")
	cfg.Library.Spotify.AccessToken = resolveEnvRef(cfg.Library.Spotify.AccessToken)
	for name, target := range cfg.Targets {
		target.Token = resolveEnvRef(target.Token)
		cfg.Targets[name] = target
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the daemon cannot run with.
func (c *Config) Validate() error {
	switch c.Library.Backend {
	case "spotify", "static":
	default:
		return fmt.Errorf("invalid config: unknown library backend %q", c.Library.Backend)
	}
	if c.Library.Backend == "static" && c.Library.Static.Path == "" {
		return fmt.Errorf("invalid config: library.static.path is required for the static backend")
	}
	if c.Resolver.Threshold <= 0 || c.Resolver.Threshold > 1 {
		return fmt.Errorf("invalid config: resolver.threshold %v outside (0,1]", c.Resolver.Threshold)
	}
	if c.Resolver.Margin <= 0 || c.Resolver.Margin > 1 {
		return fmt.Errorf("invalid config: resolver.margin %v outside (0,1]", c.Resolver.Margin)
	}
	if c.Resolver.MaxAlternatives < 2 {
		return fmt.Errorf("invalid config: resolver.max_alternatives %d must be at least 2", c.Resolver.MaxAlternatives)
	}
	if !c.Transports.GRPC.Enabled && !c.Transports.HTTP.Enabled && !c.Transports.MQTT.Enabled {
		return fmt.Errorf("invalid config: no transports enabled")
	}
	for name, t := range c.Targets {
		switch t.Protocol {
		case "http", "grpc", "mqtt":
		default:
			return fmt.Errorf("invalid config: target %q has unknown protocol %q", name, t.Protocol)
		}
	}
	return nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		envKey := val[2 : len(val)-1]
		if envVal := os.Getenv(envKey); envVal != "" {
			return envVal
		}
	}
	return val
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
