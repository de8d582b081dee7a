package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for jsondoc
type Config struct {
	Printer PrinterConfig `yaml:"printer"`
	Parser  ParserConfig  `yaml:"parser"`
	Logging LoggingConfig `yaml:"logging"`
}

// PrinterConfig controls how documents are written back out
type PrinterConfig struct {
	// Indent is the text written once per nesting level
	Indent string `yaml:"indent"`
	// InlineArrayLimit is the element count from which arrays of scalars go multi-line
	InlineArrayLimit int `yaml:"inline_array_limit" validate:"gte=1"`
	// Format selects the output syntax
	Format string `yaml:"format" validate:"oneof=text yaml"`
}

// ParserConfig controls the document grammar
type ParserConfig struct {
	// Strict requires commas between elements and rejects data after the document
	Strict bool `yaml:"strict"`
}

// LoggingConfig controls the structured logger
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"oneof=console json"`
}

// ConfigNames are the file names FindConfigFile looks for, in order
var ConfigNames = []string{".jsondoc.yml", ".jsondoc.yaml", "jsondoc.yml", "jsondoc.yaml"}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Printer: PrinterConfig{
			Indent:           "\t",
			InlineArrayLimit: 5,
			Format:           "text",
		},
		Parser: ParserConfig{
			Strict: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks the configured values against their allowed ranges
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
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

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in the current directory and its parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFrom(currentDir)
}

func findConfigFrom(dir string) string {
	for {
		for _, name := range ConfigNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			// Reached root directory
			return ""
		}
		dir = parentDir
	}
}

// LoadConfigWithCLI loads the config file, if any, and applies CLI flags on top.
// Boolean flags can only switch features on, so an unset flag keeps the file's value.
func LoadConfigWithCLI(configPath string, cliStrict, cliDebug bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliStrict {
		cfg.Parser.Strict = true
	}
	if cliDebug {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}
