// Package config provides configuration management for the leadsunifier CLI.
//
// Settings are layered defaults < config file < LEADSUNIFIER_* environment
// variables < explicitly set flags.
package config

import (
	"log/slog"
	"time"

	sharedcfg "github.com/leapstack-labs/leadsunifier/internal/config"
)

// Config holds all CLI configuration options.
type Config struct {
	InputDir       string      `koanf:"input_dir"`
	Pattern        string      `koanf:"pattern"`
	Exclude        []string    `koanf:"exclude"`
	OutputFile     string      `koanf:"output_file"`
	Format         string      `koanf:"format"`
	OutputFormat   string      `koanf:"output"`
	SampleSize     int         `koanf:"sample_size"`
	PreviewRows    int         `koanf:"preview_rows"`
	FoldDiacritics bool        `koanf:"fold_diacritics"`
	Dictionaries   string      `koanf:"dictionaries"`
	LogDir         string      `koanf:"log_dir"`
	LogLevel       slog.Level  `koanf:"log_level"`
	Verbose        bool        `koanf:"verbose"`
	Watch          WatchConfig `koanf:"watch"`

	// ConfigFile is the config file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// WatchConfig holds settings of the watch command.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultInputDir    = sharedcfg.DefaultInputDir
	DefaultPattern     = sharedcfg.DefaultPattern
	DefaultOutputFile  = sharedcfg.DefaultOutputFile
	DefaultOutput      = sharedcfg.DefaultOutput
	DefaultSampleSize  = sharedcfg.DefaultSampleSize
	DefaultPreviewRows = sharedcfg.DefaultPreviewRows
	DefaultLogDir      = sharedcfg.DefaultLogDir
	DefaultLogLevel    = sharedcfg.DefaultLogLevel
	DefaultDebounce    = sharedcfg.DefaultDebounce
)

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "LEADSUNIFIER_"
