package config

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joeycumines/chartview/internal/schema"
)

// OptionType is the value type an option is validated against.
type OptionType string

const (
	TypeString OptionType = "string"
	// TypeBool accepts true/false, yes/no, on/off and 1/0.
	TypeBool OptionType = "bool"
	// TypeNumber backs slider fields.
	TypeNumber OptionType = "number"
	// TypeDuration uses time.ParseDuration syntax.
	TypeDuration OptionType = "duration"
)

// ConfigOption declares one file option: a global setting, or an initial
// field value inside a [chartType] section.
type ConfigOption struct {
	Key         string
	Type        OptionType
	Default     string
	Description string
	// Section is empty for global options, else a chart type.
	Section string
	// EnvVar, when set, takes precedence over the file.
	EnvVar string
	// Choices restricts the accepted values. Select fields fill it from
	// their options.
	Choices []string
}

// ConfigSchema is the set of known options, in registration order.
type ConfigSchema struct {
	options   []*ConfigOption
	byKey     map[string]*ConfigOption
	bySection map[string]map[string]*ConfigOption
}

// NewSchema returns an empty schema.
func NewSchema() *ConfigSchema {
	return &ConfigSchema{
		byKey:     make(map[string]*ConfigOption),
		bySection: make(map[string]map[string]*ConfigOption),
	}
}

// Register adds opt. Re-registering a key in the same section replaces the
// lookup entry.
func (s *ConfigSchema) Register(opt ConfigOption) {
	ref := new(ConfigOption)
	*ref = opt
	s.options = append(s.options, ref)
	if opt.Section == "" {
		s.byKey[opt.Key] = ref
	} else {
		if s.bySection[opt.Section] == nil {
			s.bySection[opt.Section] = make(map[string]*ConfigOption)
		}
		s.bySection[opt.Section][opt.Key] = ref
	}
}

func (s *ConfigSchema) RegisterAll(opts []ConfigOption) {
	for _, opt := range opts {
		s.Register(opt)
	}
}

// Lookup returns the option registered under section and key, or nil. The
// global section is the empty string.
func (s *ConfigSchema) Lookup(section, key string) *ConfigOption {
	if section == "" {
		return s.byKey[key]
	}
	if sec, ok := s.bySection[section]; ok {
		return sec[key]
	}
	return nil
}

// HasSection reports whether any option is registered under section.
func (s *ConfigSchema) HasSection(section string) bool {
	_, ok := s.bySection[section]
	return ok
}

func (s *ConfigSchema) GlobalOptions() []ConfigOption {
	return s.SectionOptions("")
}

// SectionOptions returns the options of section in registration order.
func (s *ConfigSchema) SectionOptions(section string) []ConfigOption {
	var out []ConfigOption
	for _, o := range s.options {
		if o.Section == section {
			out = append(out, *o)
		}
	}
	return out
}

// Sections returns the chart type sections, sorted.
func (s *ConfigSchema) Sections() []string {
	out := make([]string, 0, len(s.bySection))
	for sec := range s.bySection {
		out = append(out, sec)
	}
	sort.Strings(out)
	return out
}

// Resolve returns the effective value of a global key. A set environment
// variable wins, even when empty, then the file, then the default. A nil
// Config is treated as an empty file.
func (s *ConfigSchema) Resolve(c *Config, key string) string {
	opt := s.Lookup("", key)
	if opt != nil && opt.EnvVar != "" {
		if v, ok := os.LookupEnv(opt.EnvVar); ok {
			return v
		}
	}
	if c != nil {
		if v, ok := c.GetGlobalOption(key); ok {
			return v
		}
	}
	if opt != nil {
		return opt.Default
	}
	return ""
}

// ResolveDuration resolves key and parses it as a time.Duration, falling
// back to the schema default when the effective value is invalid.
func (s *ConfigSchema) ResolveDuration(c *Config, key string) time.Duration {
	if d, err := time.ParseDuration(s.Resolve(c, key)); err == nil {
		return d
	}
	if opt := s.Lookup("", key); opt != nil {
		if d, err := time.ParseDuration(opt.Default); err == nil {
			return d
		}
	}
	return 0
}

// ValidateConfig returns one sorted message per problem in c: unknown keys,
// unknown chart type sections, bad values for the option type, and values
// outside the declared choices.
func ValidateConfig(c *Config, s *ConfigSchema) []string {
	var issues []string

	for key, value := range c.Global {
		opt := s.Lookup("", key)
		if opt == nil {
			issues = append(issues, fmt.Sprintf("unknown global option: %q (value: %q)", key, value))
			continue
		}
		if err := validateOption(opt, value); err != nil {
			issues = append(issues, fmt.Sprintf("global option %q: %v", key, err))
		}
	}

	for section, opts := range c.Charts {
		if !s.HasSection(section) {
			issues = append(issues, fmt.Sprintf("unknown chart type section: [%s]", section))
			continue
		}
		for key, value := range opts {
			opt := s.Lookup(section, key)
			if opt == nil {
				issues = append(issues, fmt.Sprintf("unknown field for chart type %q: %q (value: %q)", section, key, value))
				continue
			}
			if err := validateOption(opt, value); err != nil {
				issues = append(issues, fmt.Sprintf("field %q in [%s]: %v", key, section, err))
			}
		}
	}

	sort.Strings(issues)
	return issues
}

func validateOption(opt *ConfigOption, value string) error {
	if err := validateType(opt.Type, value); err != nil {
		return err
	}
	if len(opt.Choices) > 0 && !slices.Contains(opt.Choices, value) {
		return fmt.Errorf("expected one of %s, got %q", strings.Join(opt.Choices, ", "), value)
	}
	return nil
}

func validateType(t OptionType, value string) error {
	switch t {
	case TypeString, "":
		return nil
	case TypeBool:
		if _, err := parseBool(value); err != nil {
			return fmt.Errorf("expected bool, got %q", value)
		}
	case TypeNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("expected number, got %q", value)
		}
	case TypeDuration:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("expected duration, got %q", value)
		}
	default:
		return fmt.Errorf("unknown option type %q", t)
	}
	return nil
}

// FormatHelp renders the global options, then each chart section.
func (s *ConfigSchema) FormatHelp() string {
	var b strings.Builder

	globals := s.GlobalOptions()
	if len(globals) > 0 {
		b.WriteString("Global Options:\n")
		for _, o := range globals {
			writeOptionHelp(&b, o)
		}
	}

	for _, sec := range s.Sections() {
		opts := s.SectionOptions(sec)
		if len(opts) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n[%s] Options:\n", sec)
		for _, o := range opts {
			writeOptionHelp(&b, o)
		}
	}

	return b.String()
}

func writeOptionHelp(b *strings.Builder, o ConfigOption) {
	fmt.Fprintf(b, "  %-35s %s", o.Key, o.Description)
	parts := make([]string, 0, 4)
	if o.Type != "" && o.Type != TypeString {
		parts = append(parts, fmt.Sprintf("type: %s", o.Type))
	}
	if len(o.Choices) > 0 {
		parts = append(parts, fmt.Sprintf("one of: %s", strings.Join(o.Choices, "|")))
	}
	if o.Default != "" {
		parts = append(parts, fmt.Sprintf("default: %s", o.Default))
	}
	if o.EnvVar != "" {
		parts = append(parts, fmt.Sprintf("env: %s", o.EnvVar))
	}
	if len(parts) > 0 {
		fmt.Fprintf(b, " (%s)", strings.Join(parts, ", "))
	}
	b.WriteString("\n")
}

// DefaultSchema returns the canonical schema: the global options plus one
// section per built-in chart type, derived from its field declarations.
func DefaultSchema() *ConfigSchema {
	return SchemaFor(schema.Default())
}

// SchemaFor returns the global options plus one section per chart type of
// registry.
func SchemaFor(registry *schema.Registry) *ConfigSchema {
	s := NewSchema()
	s.RegisterAll(defaultGlobalOptions())
	for _, ct := range registry.ChartTypes() {
		s.RegisterAll(chartOptions(registry, ct.Type))
	}
	return s
}

func defaultGlobalOptions() []ConfigOption {
	return []ConfigOption{
		{Key: KeyChartType, Type: TypeString, Default: schema.ChartLine, Description: "Chart type selected at startup"},
		{Key: KeyStorageBackend, Type: TypeString, Default: "auto", Description: "Persistence backend", EnvVar: "CHARTVIEW_STORAGE_BACKEND",
			Choices: []string{"auto", "fs", "memory", "postgres", "none"}},
		{Key: KeyStorageDir, Type: TypeString, Default: "", Description: "Root directory of the fs backend", EnvVar: "CHARTVIEW_STORAGE_DIR"},
		{Key: KeyStorageNamespace, Type: TypeString, Default: "default", Description: "Namespace partitioning persisted documents"},
		{Key: KeyStorageDSN, Type: TypeString, Default: "", Description: "Connection string of the postgres backend", EnvVar: "CHARTVIEW_STORAGE_DSN"},
		{Key: KeyStorageTimeout, Type: TypeDuration, Default: "5s", Description: "Timeout of postgres statements"},
		{Key: KeyLogLevel, Type: TypeString, Default: "warn", Description: "Log level: debug, info, warn, error", EnvVar: "CHARTVIEW_LOG_LEVEL",
			Choices: []string{"debug", "info", "warn", "error"}},
	}
}

// chartOptions declares the initial value options of one chart type.
func chartOptions(registry *schema.Registry, chartType string) []ConfigOption {
	var out []ConfigOption
	seen := make(map[string]bool)
	for _, f := range registry.FlattenedFields(chartType) {
		if f.IsAction() || seen[f.Field] {
			continue
		}
		seen[f.Field] = true
		f, _ = registry.Field(chartType, f.Field)
		opt := ConfigOption{
			Key:         f.Field,
			Type:        optionType(f.Type),
			Default:     FormatValue(f.Default),
			Description: f.Label,
			Section:     chartType,
		}
		for _, o := range f.Options {
			opt.Choices = append(opt.Choices, FormatValue(o.Value))
		}
		out = append(out, opt)
	}
	return out
}

func optionType(t schema.FieldType) OptionType {
	switch t {
	case schema.TypeSwitch:
		return TypeBool
	case schema.TypeSlider:
		return TypeNumber
	default:
		return TypeString
	}
}

// FormatValue renders a field value the way the configuration file stores
// it.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
