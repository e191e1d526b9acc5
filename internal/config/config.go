// Package config loads pickupworld settings from YAML and the environment.
// Order: defaults -> config file -> PICKUPWORLD_* environment variables.
// Command-line flags are applied last by the caller.
package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/pickupworld/internal/environments/pickup"
	"github.com/KirkDiggler/pickupworld/internal/errors"
)

// Environment variable names
const (
	EnvPort            = "PICKUPWORLD_PORT"
	EnvRedisEndpoint   = "PICKUPWORLD_REDIS_ENDPOINT"
	EnvSQLitePath      = "PICKUPWORLD_EPISODES_SQLITE_PATH"
	EnvSize            = "PICKUPWORLD_SIZE"
	EnvNumObjs         = "PICKUPWORLD_NUM_OBJS"
	EnvMaxEpisodeSteps = "PICKUPWORLD_MAX_EPISODE_STEPS"
	EnvSeed            = "PICKUPWORLD_SEED"
	EnvLogLevel        = "PICKUPWORLD_LOG_LEVEL"
	EnvLogFormat       = "PICKUPWORLD_LOG_FORMAT"
)

// Config contains all pickupworld settings
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Redis       RedisConfig       `yaml:"redis"`
	Episodes    EpisodesConfig    `yaml:"episodes"`
	Environment EnvironmentConfig `yaml:"environment"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ServerConfig configures the gRPC listener
type ServerConfig struct {
	Port int `yaml:"port"`
}

// RedisConfig configures layout storage. An empty endpoint keeps layouts in
// memory. A comma separated list selects a cluster client.
type RedisConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// Endpoints splits Endpoint into addresses
func (c RedisConfig) Endpoints() []string {
	var out []string
	for _, ep := range strings.Split(c.Endpoint, ",") {
		if ep = strings.TrimSpace(ep); ep != "" {
			out = append(out, ep)
		}
	}
	return out
}

// EpisodesConfig configures the episode log. An empty path keeps it in memory.
type EpisodesConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
}

// EnvironmentConfig holds the defaults for new sessions
type EnvironmentConfig struct {
	Size            float64 `yaml:"size"`
	NumObjs         int     `yaml:"num_objs"`
	MaxEpisodeSteps int     `yaml:"max_episode_steps"`
	// Seed of 0 draws one from the clock per session
	Seed int64 `yaml:"seed"`
}

// LoggingConfig selects the slog handler
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Log formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 50051},
		Environment: EnvironmentConfig{
			Size:            pickup.DefaultSize,
			NumObjs:         pickup.DefaultNumObjs,
			MaxEpisodeSteps: 400,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: FormatText,
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NotFoundf("config file %s not found", path)
			}
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse config file")
		}
	}

	if err := applyEnvOverrides(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every setting and reports all violations together
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		vb.Fieldf("server.port", "must be between 0 and 65535, got %d", c.Server.Port)
	}
	errors.ValidateMinFloat("environment.size", c.Environment.Size, pickup.MinSize, vb)
	errors.ValidateMinInt("environment.num_objs", c.Environment.NumObjs, 0, vb)
	errors.ValidateMinInt("environment.max_episode_steps", c.Environment.MaxEpisodeSteps, 0, vb)
	errors.ValidateEnum("logging.level", c.Logging.Level, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("logging.format", c.Logging.Format, []string{FormatText, FormatJSON}, vb)

	return vb.Build()
}

// NewHandler builds the slog handler the logging settings describe
func (c LoggingConfig) NewHandler(w io.Writer) (slog.Handler, error) {
	level, ok := logLevels[c.Level]
	if !ok {
		return nil, errors.InvalidArgumentf("unknown log level %q", c.Level)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch c.Format {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts), nil
	case FormatText, "":
		return slog.NewTextHandler(w, opts), nil
	default:
		return nil, errors.InvalidArgumentf("unknown log format %q", c.Format)
	}
}

func applyEnvOverrides(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		return v, ok && v != ""
	}

	if v, ok := get(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.InvalidArgumentf("%s must be an integer, got %q", EnvPort, v)
		}
		cfg.Server.Port = port
	}
	if v, ok := get(EnvRedisEndpoint); ok {
		cfg.Redis.Endpoint = v
	}
	if v, ok := get(EnvSQLitePath); ok {
		cfg.Episodes.SQLitePath = v
	}
	if v, ok := get(EnvSize); ok {
		size, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.InvalidArgumentf("%s must be a number, got %q", EnvSize, v)
		}
		cfg.Environment.Size = size
	}
	if v, ok := get(EnvNumObjs); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.InvalidArgumentf("%s must be an integer, got %q", EnvNumObjs, v)
		}
		cfg.Environment.NumObjs = n
	}
	if v, ok := get(EnvMaxEpisodeSteps); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.InvalidArgumentf("%s must be an integer, got %q", EnvMaxEpisodeSteps, v)
		}
		cfg.Environment.MaxEpisodeSteps = n
	}
	if v, ok := get(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.InvalidArgumentf("%s must be an integer, got %q", EnvSeed, v)
		}
		cfg.Environment.Seed = seed
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v, ok := get(EnvLogFormat); ok {
		cfg.Logging.Format = strings.ToLower(v)
	}

	return nil
}
