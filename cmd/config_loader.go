package cmd

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/dbview/pkg/settings"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

type appConfig struct {
	Display displayConfig `yaml:"display"`
	Query   queryConfig   `yaml:"query"`
	Tables  tablesConfig  `yaml:"tables"`
}

type displayConfig struct {
	MaxRows       int  `yaml:"max_rows"`
	FallbackWidth int  `yaml:"fallback_width"`
	Full          bool `yaml:"full"`
}

type queryConfig struct {
	Timeout time.Duration `yaml:"timeout"`
	MaxRows int           `yaml:"max_rows"`
}

type tablesConfig struct {
	Exclude []string `yaml:"exclude"`
}

// excluded reports whether table is listed under tables.exclude.
func (c appConfig) excluded(table string) bool {
	for _, name := range c.Tables.Exclude {
		if name == table {
			return true
		}
	}
	return false
}

func (c appConfig) validate() error {
	if c.Display.MaxRows < 0 {
		return fmt.Errorf("display.max_rows must be non-negative, got %d", c.Display.MaxRows)
	}
	if c.Display.FallbackWidth <= 0 {
		return fmt.Errorf("display.fallback_width must be positive, got %d", c.Display.FallbackWidth)
	}
	if c.Query.Timeout < 0 {
		return fmt.Errorf("query.timeout must be non-negative, got %s", c.Query.Timeout)
	}
	if c.Query.MaxRows < 0 {
		return fmt.Errorf("query.max_rows must be non-negative, got %d", c.Query.MaxRows)
	}
	return nil
}

// configLoader keeps the default config source swappable for tests.
type configLoader struct {
	defaultConfig func() ([]byte, error)
}

var cfgLoader = configLoader{defaultConfig: loadDefaultConfigYAML}

func loadMergedConfig(cfgPath string) (appConfig, error) {
	return cfgLoader.loadMergedConfig(cfgPath)
}

func loadDefaultConfigYAML() ([]byte, error) {
	if len(embeddedDefaultConfig) == 0 {
		return nil, fmt.Errorf("embedded default config is empty")
	}
	return append([]byte(nil), embeddedDefaultConfig...), nil
}

// loadMergedConfig decodes the defaults and then the file at cfgPath on top,
// so keys missing from the file keep their default.
func (l configLoader) loadMergedConfig(cfgPath string) (appConfig, error) {
	var cfg appConfig

	defaultData, err := l.defaultConfig()
	if err != nil {
		return cfg, fmt.Errorf("load default config: %w", err)
	}
	if err := yaml.Unmarshal(defaultData, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}

	if cfgPath != "" {
		data, err := os.ReadFile(cfgPath)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config %s: %w", cfgPath, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// resolveConfigPath returns the explicit path if set, otherwise
// $XDG_CONFIG_HOME/dbview/config.yaml or ~/.config/dbview/config.yaml when
// present.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

func marshalConfig(cfg appConfig) (string, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(out), nil
}
