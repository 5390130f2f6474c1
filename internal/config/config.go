package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/renato0307/apptopo/internal/logging"
)

// Graph sources
const (
	SourceSample = "sample"
	SourceFile   = "file"
	SourceHub    = "hub"
)

// Config is the complete console configuration
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Filters FiltersConfig `yaml:"filters"`
	UI      UIConfig      `yaml:"ui"`
	Log     LogConfig     `yaml:"log"`
}

// SourceConfig selects where the topology comes from
type SourceConfig struct {
	// Type is sample, file or hub
	Type string `yaml:"type"`
	// File is the graph document read by the file source
	File string `yaml:"file"`
	// Kubeconfig and Context locate the hub cluster
	Kubeconfig string `yaml:"kubeconfig"`
	Context    string `yaml:"context"`
	// Application is the hub application as namespace/name
	Application string `yaml:"application"`
	// Timeout bounds a single fetch
	Timeout time.Duration `yaml:"timeout"`
	// RefreshInterval re-fetches periodically; 0 disables it
	RefreshInterval time.Duration `yaml:"refreshInterval"`
}

// FiltersConfig seeds the active filters at startup
type FiltersConfig struct {
	Namespaces []string `yaml:"namespaces"`
	Clusters   []string `yaml:"clusters"`
}

type UIConfig struct {
	Theme string `yaml:"theme"`
}

type LogConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
}

// DefaultPath is ~/.config/apptopo/config.yaml
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "apptopo", "config.yaml")
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Type:    SourceSample,
			Timeout: 30 * time.Second,
		},
		UI: UIConfig{
			Theme: "charm",
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads the YAML file at path and applies APPTOPO_* environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("APPTOPO_SOURCE"); v != "" {
		cfg.Source.Type = v
	}
	if v := os.Getenv("APPTOPO_FILE"); v != "" {
		cfg.Source.File = v
	}
	if v := os.Getenv("APPTOPO_KUBECONFIG"); v != "" {
		cfg.Source.Kubeconfig = v
	}
	if v := os.Getenv("APPTOPO_CONTEXT"); v != "" {
		cfg.Source.Context = v
	}
	if v := os.Getenv("APPTOPO_APPLICATION"); v != "" {
		cfg.Source.Application = v
	}
	if v := os.Getenv("APPTOPO_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("APPTOPO_TIMEOUT: %w", err)
		}
		cfg.Source.Timeout = d
	}
	if v := os.Getenv("APPTOPO_REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("APPTOPO_REFRESH_INTERVAL: %w", err)
		}
		cfg.Source.RefreshInterval = d
	}
	if v := os.Getenv("APPTOPO_NAMESPACES"); v != "" {
		cfg.Filters.Namespaces = splitList(v)
	}
	if v := os.Getenv("APPTOPO_CLUSTERS"); v != "" {
		cfg.Filters.Clusters = splitList(v)
	}
	if v := os.Getenv("APPTOPO_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("APPTOPO_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("APPTOPO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("APPTOPO_LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}
	if v := os.Getenv("APPTOPO_LOG_MAX_SIZE_MB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("APPTOPO_LOG_MAX_SIZE_MB: %w", err)
		}
		cfg.Log.MaxSizeMB = n
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	switch c.Source.Type {
	case SourceSample:
	case SourceFile:
		if c.Source.File == "" {
			return fmt.Errorf("source.file is required when source.type is %q", SourceFile)
		}
	case SourceHub:
		if _, _, err := c.Source.ApplicationRef(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown source.type %q (supported: sample, file, hub)", c.Source.Type)
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("source.timeout must be positive (got %s)", c.Source.Timeout)
	}
	if c.Source.RefreshInterval < 0 {
		return fmt.Errorf("source.refreshInterval must not be negative")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return fmt.Errorf("log.maxSizeMB and log.maxBackups must not be negative")
	}
	return nil
}

// ApplicationRef splits source.application into namespace and name
func (s SourceConfig) ApplicationRef() (namespace, name string, err error) {
	namespace, name, found := strings.Cut(s.Application, "/")
	if !found || namespace == "" || name == "" {
		return "", "", fmt.Errorf("source.application must be namespace/name (got %q)", s.Application)
	}
	return namespace, name, nil
}

// Logging converts the log section into a logger configuration.
// Call after Validate.
func (c *Config) Logging() logging.Config {
	level, _ := logging.ParseLevel(c.Log.Level)
	format, _ := logging.ParseFormat(c.Log.Format)
	return logging.Config{
		FilePath:   c.Log.File,
		Level:      level,
		Format:     format,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
	}
}
