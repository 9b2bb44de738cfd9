package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/iancoleman/strcase"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Input formats
const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Export name cases
const (
	CasePreserve       = ""
	CaseCamel          = "camel"
	CasePascal         = "pascal"
	CaseSnake          = "snake"
	CaseScreamingSnake = "screaming_snake"
	CaseKebab          = "kebab"
)

// Config represents the complete configuration for configdefs
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Naming NamingConfig `yaml:"naming"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// InputConfig controls how input documents are decoded
type InputConfig struct {
	Format        string `yaml:"format"`
	AllowComments bool   `yaml:"allow_comments"`
}

// NamingConfig controls declaration and member names
type NamingConfig struct {
	ExportCase    string            `yaml:"export_case"`
	FieldMappings map[string]string `yaml:"field_mappings"`
	QuoteKeys     bool              `yaml:"quote_keys"`
}

// OutputConfig controls the generated text
type OutputConfig struct {
	FileHeader      string        `yaml:"file_header"`
	ListIndexKeys   bool          `yaml:"list_index_keys"`
	TrailingNewline bool          `yaml:"trailing_newline"`
	Exclude         []ExcludeRule `yaml:"exclude"`
}

// ExcludeRule drops every member whose path matches Pattern (a regular
// expression over paths like "flags.levels[2]") or Glob (a doublestar glob
// over the same path with "/" separators, like "flags/levels/2").
type ExcludeRule struct {
	Pattern string `yaml:"pattern,omitempty"`
	Glob    string `yaml:"glob,omitempty"`
	Comment string `yaml:"comment,omitempty"`

	// compiled regex (not serialized)
	regex *regexp.Regexp
}

// LogConfig controls diagnostic logging
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Overrides carries values given on the command line. Zero values mean the
// flag was not given.
type Overrides struct {
	Format      string
	ExportCase  string
	FileHeader  string
	NoIndexKeys bool
	NoComments  bool
	Debug       bool
	LogJSON     bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Input: InputConfig{
			Format:        FormatAuto,
			AllowComments: true,
		},
		Naming: NamingConfig{
			ExportCase:    CasePreserve,
			FieldMappings: make(map[string]string),
			QuoteKeys:     false,
		},
		Output: OutputConfig{
			ListIndexKeys:   true,
			TrailingNewline: true,
			Exclude:         []ExcludeRule{},
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	return LoadConfigFS(afero.NewOsFs(), path)
}

// LoadConfigFS loads configuration from a YAML file on fsys
func LoadConfigFS(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".configdefs.yml", ".configdefs.yaml", "configdefs.yml", "configdefs.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

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

// Validate checks enumerated settings and compiles exclude patterns
func (c *Config) Validate() error {
	switch c.Input.Format {
	case FormatAuto, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("invalid input format '%s': must be one of auto, json, yaml", c.Input.Format)
	}

	switch c.Naming.ExportCase {
	case CasePreserve, CaseCamel, CasePascal, CaseSnake, CaseScreamingSnake, CaseKebab:
	default:
		return fmt.Errorf("invalid export case '%s': must be one of camel, pascal, snake, screaming_snake, kebab", c.Naming.ExportCase)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level '%s': must be one of debug, info, warn, error", c.Log.Level)
	}

	return c.compilePatterns()
}

// compilePatterns compiles all regex patterns in the config
func (c *Config) compilePatterns() error {
	for i := range c.Output.Exclude {
		rule := &c.Output.Exclude[i]
		if rule.Pattern == "" && rule.Glob == "" {
			return fmt.Errorf("exclude rule %d needs a pattern or a glob", i+1)
		}
		if rule.Glob != "" && !doublestar.ValidatePattern(rule.Glob) {
			return fmt.Errorf("invalid exclude glob '%s'", rule.Glob)
		}
		if rule.Pattern == "" {
			continue
		}
		regex, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return fmt.Errorf("invalid exclude pattern '%s': %w", rule.Pattern, err)
		}
		rule.regex = regex
	}
	return nil
}

var globPathReplacer = strings.NewReplacer(".", "/", "[", "/", "]", "")

// globPath turns "a.b[2].c" into "a/b/2/c".
func globPath(path string) string {
	return globPathReplacer.Replace(path)
}

// MatchesPath checks if this rule matches the given member path
func (r *ExcludeRule) MatchesPath(path string) bool {
	if r.Glob != "" {
		if ok, err := doublestar.Match(r.Glob, globPath(path)); err == nil && ok {
			return true
		}
	}
	if r.Pattern == "" {
		return false
	}
	if r.regex == nil {
		// Try to compile if not already compiled (fallback)
		regex, err := regexp.Compile(r.Pattern)
		if err != nil {
			return false
		}
		return regex.MatchString(path)
	}
	return r.regex.MatchString(path)
}

// IsExcluded checks if the member at path should be left out of the output
func (c *Config) IsExcluded(path string) bool {
	for i := range c.Output.Exclude {
		if c.Output.Exclude[i].MatchesPath(path) {
			return true
		}
	}
	return false
}

// GetExportName returns the declaration name for a top-level key, applying naming rules
func (c *Config) GetExportName(key string) string {
	// Check custom mappings first
	if mapped, exists := c.Naming.FieldMappings[key]; exists {
		return mapped
	}

	switch c.Naming.ExportCase {
	case CaseCamel:
		return strcase.ToLowerCamel(key)
	case CasePascal:
		return strcase.ToCamel(key)
	case CaseSnake:
		return strcase.ToSnake(key)
	case CaseScreamingSnake:
		return strcase.ToScreamingSnake(key)
	case CaseKebab:
		return strcase.ToKebab(key)
	default:
		return key
	}
}

// ApplyOverrides merges command-line values into the config.
// Only flags that were given take precedence over file values.
func (c *Config) ApplyOverrides(o Overrides) error {
	if o.Format != "" {
		c.Input.Format = o.Format
	}
	if o.ExportCase != "" {
		c.Naming.ExportCase = o.ExportCase
	}
	if o.FileHeader != "" {
		c.Output.FileHeader = o.FileHeader
	}
	if o.NoIndexKeys {
		c.Output.ListIndexKeys = false
	}
	if o.NoComments {
		c.Input.AllowComments = false
	}
	if o.Debug {
		c.Log.Level = "debug"
	}
	if o.LogJSON {
		c.Log.JSON = true
	}
	return c.Validate()
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(fsys afero.Fs, configPath string, overrides Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfigFS(fsys, configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if err := cfg.ApplyOverrides(overrides); err != nil {
		return nil, err
	}

	return cfg, nil
}
