package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for jsonsmith
type Config struct {
	Format   FormatConfig   `yaml:"format"`
	Repair   RepairConfig   `yaml:"repair"`
	Validate ValidateConfig `yaml:"validate"`
	Query    QueryConfig    `yaml:"query"`
	CSV      CSVConfig      `yaml:"csv"`
	Dev      DevConfig      `yaml:"dev"`
}

// FormatConfig controls how JSON is printed
type FormatConfig struct {
	Indent int    `yaml:"indent"` // spaces per level; 0 indents with tabs
	Color  string `yaml:"color"`  // auto, always or never
}

// RepairConfig controls the repair command
type RepairConfig struct {
	Deep bool `yaml:"deep"`
}

// ValidateConfig controls the validate command
type ValidateConfig struct {
	JWCC   bool   `yaml:"jwcc"`
	Schema string `yaml:"schema"`
}

// QueryConfig holds named path expressions
type QueryConfig struct {
	Aliases map[string]string `yaml:"aliases"`
}

// CSVConfig controls CSV output
type CSVConfig struct {
	HeaderCase     string            `yaml:"header_case"`
	HeaderMappings map[string]string `yaml:"header_mappings"`
	Skip           []ColumnRule      `yaml:"skip"`
}

// ColumnRule selects CSV columns by a pattern on their key
type ColumnRule struct {
	Pattern string `yaml:"pattern"`
	Comment string `yaml:"comment,omitempty"`

	// compiled regex (not serialized)
	regex *regexp.Regexp
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var headerCases = map[string]func(string) string{
	"":                nil,
	"none":            nil,
	"camel":           strcase.ToCamel,
	"lower_camel":     strcase.ToLowerCamel,
	"snake":           strcase.ToSnake,
	"screaming_snake": strcase.ToScreamingSnake,
	"kebab":           strcase.ToKebab,
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Format: FormatConfig{
			Indent: 2,
			Color:  ColorAuto,
		},
		Query: QueryConfig{
			Aliases: make(map[string]string),
		},
		CSV: CSVConfig{
			HeaderMappings: make(map[string]string),
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	if err := cfg.compilePatterns(); err != nil {
		return nil, fmt.Errorf("failed to compile patterns: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonsmith.yml", ".jsonsmith.yaml", "jsonsmith.yml", "jsonsmith.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

func (c *Config) check() error {
	if c.Format.Indent < 0 || c.Format.Indent > 16 {
		return fmt.Errorf("format.indent must be between 0 and 16, got %d", c.Format.Indent)
	}
	switch c.Format.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("format.color must be auto, always or never, got %q", c.Format.Color)
	}
	if _, ok := headerCases[c.CSV.HeaderCase]; !ok {
		return fmt.Errorf("unknown csv.header_case %q", c.CSV.HeaderCase)
	}
	return nil
}

// compilePatterns compiles all regex patterns in the config
func (c *Config) compilePatterns() error {
	for i := range c.CSV.Skip {
		rule := &c.CSV.Skip[i]
		regex, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return fmt.Errorf("invalid skip pattern '%s': %w", rule.Pattern, err)
		}
		rule.regex = regex
	}
	return nil
}

// MatchesColumn checks if this rule matches the given column key
func (r *ColumnRule) MatchesColumn(key string) bool {
	if r.regex == nil {
		// Try to compile if not already compiled (fallback)
		regex, err := regexp.Compile(r.Pattern)
		if err != nil {
			return false
		}
		r.regex = regex
	}
	return r.regex.MatchString(key)
}

// IndentString returns the indent unit for one nesting level
func (c *Config) IndentString() string {
	if c.Format.Indent == 0 {
		return "\t"
	}
	return strings.Repeat(" ", c.Format.Indent)
}

// HeaderName returns the CSV header for an object key, applying naming rules
func (c *Config) HeaderName(key string) string {
	// Check custom mappings first
	if mapped, exists := c.CSV.HeaderMappings[key]; exists {
		return mapped
	}

	if fn := headerCases[c.CSV.HeaderCase]; fn != nil {
		return fn(key)
	}

	return key
}

// SkipColumn reports whether a key is excluded from CSV output
func (c *Config) SkipColumn(key string) bool {
	for i := range c.CSV.Skip {
		if c.CSV.Skip[i].MatchesColumn(key) {
			return true
		}
	}
	return false
}

// ResolveQuery expands a query alias. Anything that is not an alias is
// returned unchanged.
func (c *Config) ResolveQuery(path string) string {
	if expanded, ok := c.Query.Aliases[path]; ok {
		return expanded
	}
	return path
}

// MergeConfigs merges CLI overrides into a base config.
// Non-empty values from override take precedence over base values;
// boolean switches can only be turned on.
func MergeConfigs(base, override *Config) *Config {
	merged := *base

	if override.Format.Indent > 0 {
		merged.Format.Indent = override.Format.Indent
	}
	if override.Format.Color != "" {
		merged.Format.Color = override.Format.Color
	}
	if override.Validate.Schema != "" {
		merged.Validate.Schema = override.Validate.Schema
	}

	merged.Repair.Deep = base.Repair.Deep || override.Repair.Deep
	merged.Validate.JWCC = base.Validate.JWCC || override.Validate.JWCC
	merged.Dev.Debug = base.Dev.Debug || override.Dev.Debug

	return &merged
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// An empty configPath means defaults only.
func LoadConfigWithCLI(configPath string, cli *Config) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli == nil {
		return cfg, nil
	}

	merged := MergeConfigs(cfg, cli)
	if err := merged.check(); err != nil {
		return nil, err
	}
	return merged, nil
}
