// Package config loads and validates the site configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the resolved build configuration.
type Config struct {
	// Source is the root directory holding page templates.
	Source string `yaml:"source"`

	// Content is the content root. Defaults to <source>/content.
	Content string `yaml:"content,omitempty"`

	// Output is the destination root the build writes into.
	Output string `yaml:"output"`

	// ContentTemplate is the shared content template path relative to the
	// source root.
	ContentTemplate string `yaml:"content_template,omitempty"`

	// TemplateExtension marks page template files under the source root.
	TemplateExtension string `yaml:"template_extension,omitempty"`

	// Plugins lists plugin names in invocation order.
	Plugins []string `yaml:"plugins,omitempty"`

	// Vars are externally supplied global template variables.
	Vars map[string]any `yaml:"vars,omitempty"`

	Logging LoggingConfig `yaml:"logging,omitempty"`
	History HistoryConfig `yaml:"history,omitempty"`
}

// LoggingConfig controls build diagnostics. Verbosity has no effect on build
// output correctness.
type LoggingConfig struct {
	Verbosity Verbosity `yaml:"verbosity,omitempty"`
}

// HistoryConfig enables the build history store when Path is set.
type HistoryConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Load .env if present; process environment wins over file values.
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Source == "" {
		c.Source = "."
	}
	if c.Content == "" {
		c.Content = filepath.Join(c.Source, "content")
	}
	if c.Output == "" {
		c.Output = "./public"
	}
	if c.ContentTemplate == "" {
		c.ContentTemplate = filepath.Join("templates", "content.tmpl")
	}
	if c.TemplateExtension == "" {
		c.TemplateExtension = ".tmpl"
	}
	if c.Vars == nil {
		c.Vars = map[string]any{}
	}
	c.Logging.Verbosity = NormalizeVerbosity(string(c.Logging.Verbosity))
}

func (c *Config) validate() error {
	if c.Source == c.Output {
		return fmt.Errorf("source and output directories must differ: %s", c.Source)
	}
	if c.TemplateExtension[0] != '.' {
		return fmt.Errorf("template_extension must start with a dot: %s", c.TemplateExtension)
	}
	return nil
}

// ContentTemplatePath returns the content template location under the source
// root.
func (c *Config) ContentTemplatePath() string {
	return filepath.Join(c.Source, c.ContentTemplate)
}

const exampleConfig = `# sitegen configuration
source: ./site
output: ./public

# content: ./site/content
# content_template: templates/content.tmpl

plugins: []

vars:
  siteName: My Site

logging:
  verbosity: minimum

# history:
#   path: ./.sitegen/history.db
`

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
