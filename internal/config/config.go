package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Header case transforms applied to printed column names. Lookup into the
// JSON objects always uses the column name exactly as given.
const (
	HeaderCaseOriginal  = "original"
	HeaderCaseSnake     = "snake"
	HeaderCaseCamel     = "camel"
	HeaderCasePascal    = "pascal"
	HeaderCaseKebab     = "kebab"
	HeaderCaseScreaming = "screaming"
)

// Config represents the complete configuration for a conversion run.
// It is built once at startup and read-only afterwards.
type Config struct {
	Columns     []string
	Separator   string
	ShowHeaders bool
	Raw         bool
	NoRoot      bool
	HeaderCase  string

	// Resolved I/O paths; empty means stdin/stdout
	InputPath  string
	OutputPath string
}

// fileConfig mirrors the YAML config file. Pointer fields distinguish
// "not set" from a zero value so file settings only override defaults they
// actually name. Columns and paths are CLI-only.
type fileConfig struct {
	Separator  *string `yaml:"separator"`
	NoHeaders  *bool   `yaml:"no_headers"`
	Raw        *bool   `yaml:"raw"`
	NoRoot     *bool   `yaml:"no_root"`
	HeaderCase *string `yaml:"header_case"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Separator:   ",",
		ShowHeaders: true,
		HeaderCase:  HeaderCaseOriginal,
	}
}

// LoadConfig loads configuration from a YAML file, starting from defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := NewConfig()
	if fc.Separator != nil {
		cfg.Separator = *fc.Separator
	}
	if fc.NoHeaders != nil {
		cfg.ShowHeaders = !*fc.NoHeaders
	}
	if fc.Raw != nil {
		cfg.Raw = *fc.Raw
	}
	if fc.NoRoot != nil {
		cfg.NoRoot = *fc.NoRoot
	}
	if fc.HeaderCase != nil {
		cfg.HeaderCase = *fc.HeaderCase
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsv.yml", ".jsv.yaml", "jsv.yml", "jsv.yaml"}

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

// Validate checks that the configuration describes a runnable conversion
func (c *Config) Validate() error {
	if len(c.Columns) == 0 {
		return fmt.Errorf("at least one column is required")
	}
	for i, col := range c.Columns {
		if col == "" {
			return fmt.Errorf("column %d is empty", i+1)
		}
	}
	switch c.HeaderCase {
	case HeaderCaseOriginal, HeaderCaseSnake, HeaderCaseCamel, HeaderCasePascal, HeaderCaseKebab, HeaderCaseScreaming:
	default:
		return fmt.Errorf("unknown header case %q", c.HeaderCase)
	}
	return nil
}

// DisplayName returns the header name printed for a column, applying the
// configured case transform
func (c *Config) DisplayName(column string) string {
	switch c.HeaderCase {
	case HeaderCaseSnake:
		return strcase.ToSnake(column)
	case HeaderCaseCamel:
		return strcase.ToLowerCamel(column)
	case HeaderCasePascal:
		return strcase.ToCamel(column)
	case HeaderCaseKebab:
		return strcase.ToKebab(column)
	case HeaderCaseScreaming:
		return strcase.ToScreamingSnake(column)
	default:
		return column
	}
}
