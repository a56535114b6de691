package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	sharedcfg "github.com/leapstack-labs/leadsunifier/internal/config"
)

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// configKey is used to store the loaded Config in context.
type configKey struct{}

// flagKeys maps flag names that differ from their config key.
var flagKeys = map[string]string{
	"debounce": "watch.debounce",
}

// findConfigFile finds the config file to use.
// Priority: explicit path > leadsunifier.yaml > leadsunifier.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range sharedcfg.ConfigFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// envKey transforms LEADSUNIFIER_WATCH_DEBOUNCE into watch.debounce and
// LEADSUNIFIER_INPUT_DIR into input_dir.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "watch_"); ok {
		return "watch." + rest
	}
	return key
}

// flagKey transforms a kebab-case flag name into its config key.
func flagKey(name string) string {
	if key, ok := flagKeys[name]; ok {
		return key
	}
	return strings.ReplaceAll(name, "-", "_")
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"input_dir":       DefaultInputDir,
		"pattern":         DefaultPattern,
		"exclude":         []string{},
		"output_file":     DefaultOutputFile,
		"format":          "",
		"output":          DefaultOutput,
		"sample_size":     DefaultSampleSize,
		"preview_rows":    DefaultPreviewRows,
		"fold_diacritics": false,
		"dictionaries":    "",
		"log_dir":         DefaultLogDir,
		"log_level":       DefaultLogLevel,
		"verbose":         false,
		"watch.debounce":  DefaultDebounce.String(),
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Load config file
	cfgFile = findConfigFile(cfgFile)
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Load environment variables (LEADSUNIFIER_ prefix)
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ConfigFile = cfgFile

	return &cfg, nil
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() any {
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

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the loaded configuration from the command context.
// Without one it returns the defaults.
func GetConfig(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey{}).(*Config); ok && cfg != nil {
		return cfg
	}
	return Default()
}

// Default returns a Config holding the default values.
func Default() *Config {
	return &Config{
		InputDir:     DefaultInputDir,
		Pattern:      DefaultPattern,
		OutputFile:   DefaultOutputFile,
		OutputFormat: DefaultOutput,
		SampleSize:   DefaultSampleSize,
		PreviewRows:  DefaultPreviewRows,
		LogDir:       DefaultLogDir,
		LogLevel:     slog.LevelInfo,
		Watch:        WatchConfig{Debounce: DefaultDebounce},
	}
}
