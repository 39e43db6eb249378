package lg

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config describes a resource directory and how to render from it.
type Config struct {
	// Dir holds the resource files, e.g. "./resources".
	Dir string `yaml:"dir" toml:"dir"`
	// Extensions of resource files, ".lg" when empty.
	Extensions []string `yaml:"extensions" toml:"extensions"`
	// DefaultLocale is used when a caller passes no locale.
	DefaultLocale string `yaml:"default_locale" toml:"default_locale"`
	// Bindings maps a locale to a resource id, e.g. "en-us": "main.en-US.lg".
	// When set, rendering goes through a MultiLocaleGenerator.
	Bindings map[string]string `yaml:"bindings" toml:"bindings"`
	// LogLevel is a zap level name.
	LogLevel string `yaml:"log_level" toml:"log_level"`
}

// LoadConfig reads a YAML (.yaml/.yml) or TOML (.toml) config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	cfg := new(Config)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, errors.Errorf("config %s: unsupported format", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Provider returns a FileSystemProvider for the configured directory.
func (c *Config) Provider() *FileSystemProvider {
	return NewFileSystemProvider(c.Dir, c.Extensions...)
}

// MultiLocaleGenerator builds one generator per configured binding.
func (c *Config) MultiLocaleGenerator(catalog *Catalog) (*MultiLocaleGenerator, error) {
	if len(c.Bindings) == 0 {
		return nil, errors.New("config has no bindings")
	}
	bindings := make(map[string]TemplateGenerator, len(c.Bindings))
	for locale, id := range c.Bindings {
		g, err := catalog.NewGenerator(id)
		if err != nil {
			return nil, errors.Wrapf(err, "binding %q", locale)
		}
		bindings[locale] = g
	}
	return NewMultiLocaleGenerator(bindings), nil
}
