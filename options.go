package chartview

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/joeycumines/chartview/internal/config"
	"github.com/joeycumines/chartview/internal/schema"
	"github.com/joeycumines/chartview/internal/storage"
)

// Options configures New. The zero value selects the line chart and the
// auto storage backend.
type Options struct {
	// ChartType is selected at construction. Defaults to ChartLine.
	ChartType string
	// Backend names the storage backend: auto, fs, memory, postgres or none.
	Backend string
	// Storage, when set, is used instead of opening Backend. The Editor
	// takes ownership and closes it.
	Storage storage.Backend
	// Dir is the fs backend root.
	Dir string
	// Namespace partitions persisted documents. Defaults to "default".
	Namespace string
	// DSN is the postgres connection string.
	DSN string
	// Timeout bounds postgres statements.
	Timeout time.Duration
	// Logger receives warnings. When nil, LogLevel selects a text handler on
	// stderr, or slog.Default is used.
	Logger *slog.Logger
	// LogLevel is one of debug, info, warn or error.
	LogLevel string
	// Registry overrides the built-in chart schema.
	Registry *schema.Registry
	// InitialConfig seeds the configuration before the first chart type is
	// selected. Defaults and persisted values are applied over it.
	InitialConfig map[string]any
	// Warnings are configuration file problems found by OptionsFromConfig.
	// New logs each one.
	Warnings []string
}

// DefaultNamespace partitions documents when Options.Namespace is empty.
const DefaultNamespace = "default"

// OptionsFromConfig maps a loaded configuration onto Options, applying
// environment overrides and schema defaults. The [chartType] section of the
// starting chart type seeds InitialConfig.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	s := config.DefaultSchema()
	opts := Options{
		ChartType: s.Resolve(cfg, config.KeyChartType),
		Backend:   s.Resolve(cfg, config.KeyStorageBackend),
		Dir:       s.Resolve(cfg, config.KeyStorageDir),
		Namespace: s.Resolve(cfg, config.KeyStorageNamespace),
		DSN:       s.Resolve(cfg, config.KeyStorageDSN),
		Timeout:   s.ResolveDuration(cfg, config.KeyStorageTimeout),
		LogLevel:  s.Resolve(cfg, config.KeyLogLevel),
	}
	if values := cfg.ChartValues(schema.Default(), opts.ChartType); len(values) > 0 {
		opts.InitialConfig = values
	}
	if cfg.HasWarnings() {
		opts.Warnings = slices.Clone(cfg.GetWarnings())
	}
	return opts
}

// LoadOptions loads .env files, then the configuration file (see
// config.GetConfigPath), and maps the result onto Options.
func LoadOptions() (Options, error) {
	if err := config.LoadDotEnv(); err != nil {
		return Options{}, err
	}
	cfg, err := config.Load()
	if err != nil {
		return Options{}, err
	}
	return OptionsFromConfig(cfg), nil
}

// ConfigHelp describes every configuration file option.
func ConfigHelp() string {
	return config.DefaultSchema().FormatHelp()
}

// SaveSetting writes a global option, such as "storage.backend", to the
// configuration file. The value is validated first.
func SaveSetting(key, value string) error {
	return config.SaveOption(config.DefaultSchema(), "", key, value)
}

// SaveDefault writes the initial value of a chart field to the [chartType]
// section of the configuration file. LoadOptions seeds it into the editor
// when chartType is the starting chart type.
func SaveDefault(chartType, field string, value any) error {
	return config.SaveOption(config.DefaultSchema(), chartType, field, config.FormatValue(value))
}

func (o Options) withDefaults() Options {
	if o.ChartType == "" {
		o.ChartType = schema.ChartLine
	}
	if o.Backend == "" {
		o.Backend = storage.BackendAuto
	}
	if o.Namespace == "" {
		o.Namespace = DefaultNamespace
	}
	if o.Registry == nil {
		o.Registry = schema.Default()
	}
	return o
}

func (o Options) logger() (*slog.Logger, error) {
	if o.Logger != nil {
		return o.Logger, nil
	}
	if o.LogLevel == "" {
		return slog.Default(), nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", o.LogLevel, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

func (o Options) openBackend() (storage.Backend, error) {
	if o.Storage != nil {
		return o.Storage, nil
	}
	return storage.Open(o.Backend, storage.BackendOptions{
		Namespace: o.Namespace,
		Dir:       o.Dir,
		DSN:       o.DSN,
		Timeout:   o.Timeout,
	})
}
