package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lifei6671/lg"
)

type options struct {
	configFile string
	dir        string
	dirSet     bool
	base       string
	resource   string
	locale     string
	ref        string
	dataFile   string
	logLevel   string
}

func main() {
	var o options
	pflag.StringVarP(&o.configFile, "config", "c", "", "config file (.yaml, .yml or .toml)")
	pflag.StringVarP(&o.dir, "dir", "d", "./resources", "directory of .lg resource files")
	pflag.StringVarP(&o.base, "name", "n", "", "logical resource name, e.g. main for main.lg")
	pflag.StringVarP(&o.resource, "resource", "r", "", "render from this resource id only")
	pflag.StringVarP(&o.locale, "locale", "l", "", "requested locale, e.g. en-US")
	pflag.StringVarP(&o.ref, "template", "t", "", "template name or inline reference, e.g. ${welcome()}")
	pflag.StringVar(&o.dataFile, "data", "", "YAML or JSON file with the data context")
	pflag.StringVar(&o.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pflag.Parse()
	o.dirSet = pflag.CommandLine.Changed("dir")

	if err := run(o, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run renders one template and writes it to w. The logger is synced before
// run returns.
func run(o options, w io.Writer) error {
	cfg := new(lg.Config)
	if o.configFile != "" {
		var err error
		if cfg, err = lg.LoadConfig(o.configFile); err != nil {
			return err
		}
	}
	if o.dirSet || cfg.Dir == "" {
		cfg.Dir = o.dir
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.locale == "" {
		o.locale = cfg.DefaultLocale
	}
	if o.ref == "" {
		return fmt.Errorf("--template is required")
	}

	logger, err := lg.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	data, err := loadData(o.dataFile)
	if err != nil {
		return err
	}

	catalog, err := lg.LoadCatalog(cfg.Provider(), lg.WithLogger(logger))
	if err != nil {
		return err
	}

	out, err := render(catalog, cfg, o, data)
	if err != nil {
		logger.Warn("render failed", zap.String("template", o.ref), zap.String("locale", o.locale), zap.Error(err))
		return err
	}

	logger.Debug("rendered", zap.String("template", o.ref), zap.String("locale", o.locale))
	_, err = fmt.Fprintln(w, out)
	return err
}

func render(catalog *lg.Catalog, cfg *lg.Config, o options, data map[string]any) (string, error) {
	switch {
	case o.resource != "":
		g, err := catalog.NewGenerator(o.resource)
		if err != nil {
			return "", err
		}
		return g.Generate(o.ref, data)
	case o.base != "":
		return catalog.NewResourceGenerator(o.base).Generate(o.ref, data, o.locale)
	case len(cfg.Bindings) > 0:
		m, err := cfg.MultiLocaleGenerator(catalog)
		if err != nil {
			return "", err
		}
		return m.Generate(o.ref, data, o.locale)
	default:
		return "", fmt.Errorf("one of --name, --resource or config bindings is required")
	}
}

func loadData(file string) (map[string]any, error) {
	if file == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	data := make(map[string]any)
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("data %s: %w", file, err)
	}
	return data, nil
}
