package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"fixture-generator/descriptor"
	"fixture-generator/internal/analyze"
	"fixture-generator/internal/profile"
	"fixture-generator/synth"
	"fixture-generator/utils"

	"github.com/caarlos0/env/v11"
	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"
)

const (
	FormatYAML = "yaml"
	FormatSpew = "spew"

	MaxCount = 10000
)

var ErrUsage = errors.New("usage: fixturegen -pkg <package> -type <name> [-count n] [-format yaml|spew] [-profile file]")

// envConfig holds the defaults read from the environment.
type envConfig struct {
	MaxDepth   int        `env:"FIXTUREGEN_MAX_DEPTH" envDefault:"0"`
	LogLevel   slog.Level `env:"FIXTUREGEN_LOG_LEVEL" envDefault:"info"`
	Unexported bool       `env:"FIXTUREGEN_UNEXPORTED" envDefault:"false"`
}

// Config holds fixturegen command configuration.
type Config struct {
	Package    string
	Type       string
	Profile    string
	Count      int
	Format     string
	TagName    string
	MaxDepth   int
	Unexported bool
	LogLevel   slog.Level
}

// ParseConfig parses flags into a Config. environ supplies the defaults.
func ParseConfig(fs *flag.FlagSet, args []string, environ map[string]string) (Config, error) {
	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg := Config{
		MaxDepth:   ec.MaxDepth,
		Unexported: ec.Unexported,
		LogLevel:   ec.LogLevel,
	}

	fs.StringVar(&cfg.Package, "pkg", "", "import path of the package declaring the type")
	fs.StringVar(&cfg.Type, "type", "", "name of the type to synthesize")
	fs.StringVar(&cfg.Profile, "profile", "", "YAML profile of strategy overrides")
	fs.IntVar(&cfg.Count, "count", 1, "number of values to synthesize")
	fs.StringVar(&cfg.Format, "format", FormatYAML, "output format (yaml, spew)")
	fs.StringVar(&cfg.TagName, "tag", descriptor.DefaultTagName, "struct tag holding field options")
	fs.IntVar(&cfg.MaxDepth, "max-depth", cfg.MaxDepth, "recursion cap (0 = none)")
	fs.BoolVar(&cfg.Unexported, "unexported", cfg.Unexported, "populate unexported fields")
	fs.TextVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Package == "" || c.Type == "" {
		return ErrUsage
	}

	if !utils.IsInRange(1, c.Count, MaxCount) {
		return fmt.Errorf("count must be within [1, %d], got %d", MaxCount, c.Count)
	}

	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}

	if c.Format != FormatYAML && c.Format != FormatSpew {
		return fmt.Errorf("unknown format %q", c.Format)
	}

	return nil
}

// Run executes the fixturegen command.
func Run(cfg Config, out io.Writer, errOut io.Writer) error {
	if errOut == nil {
		errOut = io.Discard
	}

	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: cfg.LogLevel}))

	analyzer := analyze.NewAnalyzer()
	graph, err := analyzer.LoadPackages(cfg.Package)
	if err != nil {
		return err
	}

	info, err := analyzer.Lookup(packagePath(graph, cfg.Package), cfg.Type)
	if err != nil {
		return err
	}

	s := synth.New(synth.Config{
		MaxDepth:          cfg.MaxDepth,
		IncludeUnexported: cfg.Unexported,
		TagName:           cfg.TagName,
		Logger:            logger,
	})

	if cfg.Profile != "" {
		p, err := profile.LoadFile(cfg.Profile)
		if err != nil {
			return err
		}

		p.Apply(s.Registry())
		logger.Info("profile applied", "path", cfg.Profile, "overrides", p.IDs())
	}

	desc := analyze.Describe(info, analyze.Options{IncludeUnexported: cfg.Unexported, TagName: cfg.TagName})

	values := make([]any, 0, cfg.Count)
	for range cfg.Count {
		v, err := s.SynthesizeType(desc)
		if err != nil {
			return fmt.Errorf("synthesize %s: %w", info.ID, err)
		}

		values = append(values, v)
	}

	logger.Debug("synthesized", "type", info.ID.String(), "count", len(values))

	return write(out, cfg.Format, values)
}

// packagePath returns the import path matching pattern. Relative patterns
// such as ./store resolve to the single loaded package.
func packagePath(graph *analyze.TypeGraph, pattern string) string {
	if _, ok := graph.Packages[pattern]; ok || len(graph.Packages) != 1 {
		return pattern
	}

	for path := range graph.Packages {
		return path
	}

	return pattern
}

func write(out io.Writer, format string, values []any) error {
	if format == FormatSpew {
		spew.Fdump(out, values...)
		return nil
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)

	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	}

	return enc.Close()
}
