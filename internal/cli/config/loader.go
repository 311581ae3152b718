package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/sqlparity/pkg/fixture"
	"github.com/leapstack-labs/sqlparity/pkg/strategy"
)

// loggerKey is used to store the logger in context. Shared with root.go
// via LoggerKey().
type loggerKey struct{}

// Package-level koanf instance and config file tracking.
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// findConfigFile finds the config file to use.
// Priority: explicit path > sqlparity.yaml > sqlparity.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"sqlparity.yaml", "sqlparity.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from file, environment variables, and
// flags. Precedence (highest to lowest): flags > env vars > config file >
// defaults.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Each load starts from a fresh koanf so earlier invocations cannot
	// leak keys into this one.
	k = koanf.New(".")

	// Layer 1: built-in defaults.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"fixture_path":    DefaultFixtureFile,
		"journal_path":    DefaultJournalFile,
		"isolation_level": DefaultIsolation,
		"transactional":   false,
		"verbose":         false,
		"output":          DefaultOutput,
		"strategies":      strategy.Families,
		"layouts":         []string{"horizontal", "vertical"},
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: the config file, when one exists.
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// Layer 3: SQLPARITY_* environment variables, mapped onto config keys
	// (SQLPARITY_FIXTURE_PATH becomes fixture_path).
	if err := k.Load(env.Provider("SQLPARITY_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SQLPARITY_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// Layer 4: command-line flags, the highest-priority source. Only flags
	// the user actually set may shadow the layers below.
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")

			// Short flag names map onto longer config keys
			switch key {
			case "fixture":
				key = "fixture_path"
			case "journal":
				key = "journal_path"
			case "isolation":
				key = "isolation_level"
			}

			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// Decode the merged layers into the struct. Layout names decode into
	// real layout values through the hook.
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				layoutHook(),
			),
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// An absent target means an embedded in-memory database.
	if cfg.Target == nil {
		cfg.Target = &TargetConfig{Type: "duckdb"}
	}

	// Fields the other target leaves empty come from the primary target
	if cfg.OtherTarget != nil {
		cfg.OtherTarget = MergeTargetConfig(cfg.Target, cfg.OtherTarget)
	}

	// Expand environment variables in credentials
	expandTargetEnvVars(cfg.Target)
	expandTargetEnvVars(cfg.OtherTarget)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Store config for access by commands
	currentConfig = &cfg

	return &cfg, nil
}

// layoutHook decodes layout names like "horizontal" into layout values.
func layoutHook() mapstructure.DecodeHookFuncType {
	layoutType := reflect.TypeOf(fixture.LayoutHorizontal)
	return func(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != layoutType {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		return fixture.ParseLayout(s)
	}
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// expandEnvVars expands ${VAR} patterns in a string with environment
// variable values.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if not found
	})
}

// expandTargetEnvVars expands environment variables in sensitive target
// fields.
func expandTargetEnvVars(t *TargetConfig) {
	if t == nil {
		return
	}
	t.Password = expandEnvVars(t.Password)
	t.User = expandEnvVars(t.User)
	t.Host = expandEnvVars(t.Host)
	t.Database = expandEnvVars(t.Database)
}

// MergeTargetConfig merges two target configs, with override taking
// precedence.
func MergeTargetConfig(base, override *TargetConfig) *TargetConfig {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base
	if override.Type != "" {
		merged.Type = override.Type
	}
	if override.Host != "" {
		merged.Host = override.Host
	}
	if override.Port != 0 {
		merged.Port = override.Port
	}
	if override.User != "" {
		merged.User = override.User
	}
	if override.Password != "" {
		merged.Password = override.Password
	}
	if override.Database != "" {
		merged.Database = override.Database
	}
	if override.SearchPath != "" {
		merged.SearchPath = override.SearchPath
	}
	if override.SSLMode != "" {
		merged.SSLMode = override.SSLMode
	}
	if override.Path != "" {
		merged.Path = override.Path
	}
	if override.Options != nil {
		merged.Options = override.Options
	}
	return &merged
}
