package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace"`
	Python    string          `yaml:"python,omitempty"`
	Namespace string          `yaml:"namespace,omitempty"`
	Packages  []string        `yaml:"packages"`
	History   HistoryConfig   `yaml:"history,omitempty"`
	Metrics   MetricsConfig   `yaml:"metrics,omitempty"`
}

// WorkspaceConfig describes the monorepo layout the orchestrator operates on.
type WorkspaceConfig struct {
	Root       string `yaml:"root,omitempty"`        // defaults to two ancestors above the executable
	SourcesDir string `yaml:"sources_dir,omitempty"` // relative to root
	DistDir    string `yaml:"dist_dir,omitempty"`    // relative to root, shared across packages
}

// HistoryConfig controls run-history persistence.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"` // defaults to <root>/.wheelhouse/history.db
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled,omitempty"`
	Textfile string `yaml:"textfile,omitempty"` // defaults to <root>/.wheelhouse/metrics.prom
}

// DefaultPackages is the candidate sub-project list used when no configuration
// file exists. Matches the workspace's client libraries in build order.
var DefaultPackages = []string{"core", "idp", "notification"}

// DefaultConfigPath is the config file the CLI looks for when no explicit
// path is given. Its absence is not an error; the tool runs on defaults.
const DefaultConfigPath = "wheelhouse.yaml"

const (
	defaultSourcesDir = "clients/python"
	defaultDistDir    = "dist/python"
	defaultNamespace  = "geniustechspace"
)

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	if err := loadEnvFiles(); err != nil {
		// Don't fail if .env doesn't exist, just log it
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

// Default returns the zero-configuration defaults. The build command falls
// back to this when the default config path does not exist, so the tool runs
// without any setup inside the workspace.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Workspace.SourcesDir == "" {
		c.Workspace.SourcesDir = defaultSourcesDir
	}
	if c.Workspace.DistDir == "" {
		c.Workspace.DistDir = defaultDistDir
	}
	if c.Namespace == "" {
		c.Namespace = defaultNamespace
	}
	if len(c.Packages) == 0 {
		c.Packages = append([]string(nil), DefaultPackages...)
	}
	if c.History.Enabled && c.History.Path == "" {
		c.History.Path = ".wheelhouse/history.db"
	}
	if c.Metrics.Enabled && c.Metrics.Textfile == "" {
		c.Metrics.Textfile = ".wheelhouse/metrics.prom"
	}
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Workspace: WorkspaceConfig{
			SourcesDir: defaultSourcesDir,
			DistDir:    defaultDistDir,
		},
		Namespace: defaultNamespace,
		Packages:  append([]string(nil), DefaultPackages...),
		History: HistoryConfig{
			Enabled: true,
			Path:    ".wheelhouse/history.db",
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}

	header := "# wheelhouse configuration\n" +
		"# packages are built sequentially in the order declared below.\n" +
		"# A package without a pyproject.toml is skipped, not failed.\n"

	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
