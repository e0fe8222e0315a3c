package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/uibuilder/internal/toolchain"
)

// DefaultExpectedVersion is the package.json version the build warns about
// when the manifest disagrees. Kept as a constant so the zero-config path
// matches what release tooling stamps into the frontend.
const DefaultExpectedVersion = "1.42.0"

// Config represents the application configuration.
type Config struct {
	// PackageName labels reports and history rows. Defaults to the
	// manifest's own name field when empty.
	PackageName     string        `yaml:"package_name,omitempty"`
	ExpectedVersion string        `yaml:"expected_version"`
	FrontendDir     string        `yaml:"frontend_dir"`
	OutputDir       string        `yaml:"output_dir"`
	PackageManager  string        `yaml:"package_manager"`
	BuildScript     string        `yaml:"build_script"`
	LogFile         string        `yaml:"log_file"`
	Report          ReportConfig  `yaml:"report,omitempty"`
	History         HistoryConfig `yaml:"history,omitempty"`
	Metrics         MetricsConfig `yaml:"metrics,omitempty"`
}

// ReportConfig controls the machine-readable build report.
type ReportConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir,omitempty"` // defaults to the package root
}

// HistoryConfig controls the SQLite run journal.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// MetricsConfig controls Prometheus textfile export.
type MetricsConfig struct {
	// Textfile is where a node_exporter textfile-collector snapshot is
	// written after each run. Empty disables export.
	Textfile string `yaml:"textfile,omitempty"`
}

// Default returns the configuration a bare checkout gets: npm driving a
// frontend/ directory that builds into frontend/build, logging to setup.log.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified file. A missing file is not an
// error: the defaults cover the conventional layout, so the builder works in
// repositories that never added a config.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if configPath == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ExpectedVersion == "" {
		c.ExpectedVersion = DefaultExpectedVersion
	}
	if c.FrontendDir == "" {
		c.FrontendDir = "frontend"
	}
	if c.OutputDir == "" {
		c.OutputDir = "build"
	}
	if c.PackageManager == "" {
		c.PackageManager = string(toolchain.NPM)
	}
	if c.BuildScript == "" {
		c.BuildScript = "build"
	}
	if c.LogFile == "" {
		c.LogFile = "setup.log"
	}
	if c.Report.Dir == "" {
		c.Report.Dir = "."
	}
	if c.History.Path == "" {
		c.History.Path = ".uibuilder/history.db"
	}
}

// Validate checks the parts of the configuration that would otherwise fail
// deep inside a build run.
func (c *Config) Validate() error {
	if _, err := toolchain.Parse(c.PackageManager); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Manager returns the configured package manager. Call Validate (or Load,
// which validates) first; an unparseable value falls back to npm here so a
// half-wired caller still behaves.
func (c *Config) Manager() toolchain.Manager {
	m, err := toolchain.Parse(c.PackageManager)
	if err != nil {
		return toolchain.NPM
	}
	return m
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		PackageName:     "my-package",
		ExpectedVersion: DefaultExpectedVersion,
		FrontendDir:     "frontend",
		OutputDir:       "build",
		PackageManager:  string(toolchain.NPM),
		BuildScript:     "build",
		LogFile:         "setup.log",
		Report:          ReportConfig{Enabled: false, Dir: "."},
		History:         HistoryConfig{Enabled: false, Path: ".uibuilder/history.db"},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
