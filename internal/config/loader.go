package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/types"
)

// ConfigLoader handles loading configuration from files.
type ConfigLoader interface {
	Load(path string) (*Config, error)
	LoadWithDefaults(path string) (*Config, error)
}

// viperConfigLoader implements ConfigLoader using Viper.
type viperConfigLoader struct {
	validator ConfigValidator
}

// NewConfigLoader creates a new ConfigLoader instance.
func NewConfigLoader(validator ConfigValidator) ConfigLoader {
	return &viperConfigLoader{
		validator: validator,
	}
}

// Load loads configuration from the specified file path. Values resolve in
// precedence order: GRAPHSYNC_* environment overrides, then the file, then
// defaults. ${VAR} references in string values interpolate from the
// environment after loading. Returns an error if the file doesn't exist,
// cannot be parsed, or fails validation.
func (l *viperConfigLoader) Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Seed defaults so sparse files and env-only keys still unmarshal.
	setDefaults(v)

	// GRAPHSYNC_GRAPH_PASSWORD overrides graph.password, and so on.
	v.SetEnvPrefix("GRAPHSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.WrapError(types.CONFIG_NOT_FOUND,
				fmt.Sprintf("config file not found at %s", path), err)
		}
		var parseErr viper.ConfigParseError
		if errors.As(err, &parseErr) {
			return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to parse config file", err)
		}
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to read config file", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to unmarshal config", err)
	}

	// Resolve ${VAR} references in string fields.
	applyInterpolation(&cfg)

	if err := l.validator.Validate(&cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_VALIDATION_FAILED, "invalid configuration", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration.
func (l *viperConfigLoader) LoadWithDefaults(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		applyInterpolation(cfg)
		if err := l.validator.Validate(cfg); err != nil {
			return nil, types.WrapError(types.CONFIG_VALIDATION_FAILED, "invalid default configuration", err)
		}
		return cfg, nil
	}

	return l.Load(path)
}

// setDefaults registers every known key with its default value so viper can
// resolve environment overrides for keys absent from the file.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("source.driver", def.Source.Driver)
	v.SetDefault("source.dsn", def.Source.DSN)
	v.SetDefault("source.batch_size", def.Source.BatchSize)
	v.SetDefault("source.max_connections", def.Source.MaxConnections)
	v.SetDefault("source.timeout", def.Source.Timeout)

	v.SetDefault("graph.uri", def.Graph.URI)
	v.SetDefault("graph.username", def.Graph.Username)
	v.SetDefault("graph.password", def.Graph.Password)
	v.SetDefault("graph.database", def.Graph.Database)
	v.SetDefault("graph.max_connection_pool_size", def.Graph.MaxConnectionPoolSize)
	v.SetDefault("graph.connection_timeout", def.Graph.ConnectionTimeout)
	v.SetDefault("graph.query_timeout", def.Graph.QueryTimeout)
	v.SetDefault("graph.max_retries", def.Graph.MaxRetries)

	v.SetDefault("sync.workers", def.Sync.Workers)
	v.SetDefault("sync.entity_types", def.Sync.EntityTypes)
	v.SetDefault("sync.skip_analysis", def.Sync.SkipAnalysis)

	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
}

// envVarPattern matches ${VAR_NAME} references in string values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// interpolateString replaces ${VAR_NAME} with environment variable values.
// Unset variables leave the reference untouched so the failure surfaces at
// connect time with the offending name visible.
func interpolateString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if envValue := os.Getenv(varName); envValue != "" {
			return envValue
		}
		return match
	})
}

// applyInterpolation resolves ${VAR} references in every string field that
// plausibly carries a secret or environment-specific value.
func applyInterpolation(cfg *Config) {
	cfg.Source.Driver = interpolateString(cfg.Source.Driver)
	cfg.Source.DSN = interpolateString(cfg.Source.DSN)

	cfg.Graph.URI = interpolateString(cfg.Graph.URI)
	cfg.Graph.Username = interpolateString(cfg.Graph.Username)
	cfg.Graph.Password = interpolateString(cfg.Graph.Password)
	cfg.Graph.Database = interpolateString(cfg.Graph.Database)

	cfg.Logging.Level = interpolateString(cfg.Logging.Level)
	cfg.Logging.Format = interpolateString(cfg.Logging.Format)
}
