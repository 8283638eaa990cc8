package config

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/mcoot/jogador/internal/ffi"
	"github.com/mcoot/jogador/internal/logging"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "JOGADOR"

// DefaultName is described when no names are given
const DefaultName = "Lucero"

// Config keys, shared by flags, environment and config files
const (
	KeyLibrary   = "library"
	KeyEncoding  = "encoding"
	KeyNames     = "names"
	KeyOutput    = "output"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
	KeyVerbose   = "verbose"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds CLI configuration
type Config struct {
	LibraryPath string   `mapstructure:"library"`
	Encoding    string   `mapstructure:"encoding"`
	Names       []string `mapstructure:"names"`
	Output      string   `mapstructure:"output"`
	LogLevel    string   `mapstructure:"log-level"`
	LogFormat   string   `mapstructure:"log-format"`
	Verbose     bool     `mapstructure:"verbose"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		LibraryPath: DefaultLibraryPath(),
		Encoding:    string(ffi.EncodingUTF8),
		Names:       []string{DefaultName},
		Output:      OutputText,
		LogLevel:    "warn",
		LogFormat:   logging.FormatAuto,
		Verbose:     false,
	}
}

// DefaultLibraryPath is libjogador with the platform's shared library
// extension, relative to the working directory.
func DefaultLibraryPath() string {
	switch runtime.GOOS {
	case "darwin":
		return "./libjogador.dylib"
	case "windows":
		return "./libjogador.dll"
	default:
		return "./libjogador.so"
	}
}

// NewViper returns a viper instance with defaults and JOGADOR_* environment
// lookup configured.
func NewViper() *viper.Viper {
	v := viper.New()

	d := DefaultConfig()
	v.SetDefault(KeyLibrary, d.LibraryPath)
	v.SetDefault(KeyEncoding, d.Encoding)
	v.SetDefault(KeyNames, d.Names)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)
	v.SetDefault(KeyVerbose, d.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads configFile (if any, falling back to $JOGADOR_CONFIG) into v and
// returns the validated result.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile == "" {
		configFile = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every enumerated value. The library path is left to
// ffi.Open, which reports a bad path as a LoadError.
func (c *Config) Validate() error {
	if _, err := ffi.ParseEncoding(c.Encoding); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("output: must be %q or %q, got %q", OutputText, OutputJSON, c.Output)
	}
	switch c.LogFormat {
	case logging.FormatAuto, logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("log-format: must be auto, text or json, got %q", c.LogFormat)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log-level: %w", err)
	}
	return nil
}

// FFIEncoding returns the parsed encoding. Only valid after Validate.
func (c *Config) FFIEncoding() ffi.Encoding {
	enc, _ := ffi.ParseEncoding(c.Encoding)
	return enc
}

// Level returns the configured log level, lowered to info when verbose.
func (c *Config) Level() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	if c.Verbose && level > slog.LevelInfo {
		level = slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}
