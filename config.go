// Package typegen loads the configuration shared by the typegen command: the
// Go packages mapped to classes and the options of the default generation
// policy.
package typegen

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pablor21/typegen/generator"
	"github.com/pablor21/typegen/logger"
	"github.com/pablor21/typegen/scanner"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var defaultConfig []byte

// output formats of generated graphs
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCBOR = "cbor"
)

type Config struct {
	Packages       []string                `json:"packages" yaml:"packages" toml:"packages"`
	Dir            string                  `json:"dir,omitempty" yaml:"dir,omitempty" toml:"dir,omitempty"`
	Visibility     scanner.VisibilityLevel `json:"visibility" yaml:"visibility" toml:"visibility"`
	MaxConcurrency int                     `json:"max_concurrency" yaml:"max_concurrency" toml:"max_concurrency"`
	LogLevel       logger.LogLevel         `json:"log_level" yaml:"log_level" toml:"log_level"`
	Generator      generator.Options       `json:"generator" yaml:"generator" toml:"generator"`
	Format         string                  `json:"format" yaml:"format" toml:"format"`
}

// NewDefaultConfig returns the embedded default configuration
func NewDefaultConfig() *Config {
	cfg, err := NewConfigFromBytes(defaultConfig, FormatYAML)
	if err != nil {
		panic("failed to parse default config: " + err.Error())
	}
	return cfg
}

// NewConfigFromBytes decodes data over the generator defaults. format is
// json, yaml or toml.
func NewConfigFromBytes(data []byte, format string) (*Config, error) {
	cfg := &Config{Generator: generator.DefaultOptions()}
	if err := cfg.decode(data, format); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads a config file over the defaults. The format follows the
// file extension: .json, .yaml, .yml or .toml.
func LoadConfig(path string) (*Config, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := NewDefaultConfig()
	if err := cfg.decode(data, format); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Dir == "" {
		// patterns in a config file are relative to the file
		cfg.Dir = filepath.Dir(path)
	}
	return cfg, nil
}

func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	}
	return "", fmt.Errorf("unsupported config file %s", path)
}

func (c *Config) decode(data []byte, format string) error {
	switch format {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(c)
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case "toml":
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown config keys %v", undecoded)
		}
		return nil
	}
	return errors.New("unsupported config format: " + format)
}

func (c *Config) normalize() error {
	if c.Packages == nil {
		c.Packages = []string{}
	}
	if c.Visibility == 0 {
		c.Visibility = scanner.VisibilityLevelExported
	}
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = runtime.GOMAXPROCS(0)
	}
	if c.LogLevel == "" {
		c.LogLevel = logger.LogLevelInfo
	}
	if c.Format == "" {
		c.Format = FormatJSON
	}
	switch c.Format {
	case FormatJSON, FormatYAML, FormatCBOR:
	default:
		return fmt.Errorf("unsupported output format %q", c.Format)
	}
	g := c.Generator
	if g.MinCollectionSize < 0 || g.MaxCollectionSize < g.MinCollectionSize {
		return fmt.Errorf("invalid collection size range [%d,%d]", g.MinCollectionSize, g.MaxCollectionSize)
	}
	if g.MaxTime.Before(g.MinTime) {
		return fmt.Errorf("invalid time range [%s,%s]", g.MinTime, g.MaxTime)
	}
	return nil
}

// ScannerConfig returns the scanner settings of c
func (c *Config) ScannerConfig() *scanner.Config {
	return &scanner.Config{
		Packages:       c.Packages,
		Dir:            c.Dir,
		Visibility:     c.Visibility,
		MaxConcurrency: c.MaxConcurrency,
		LogLevel:       c.LogLevel,
	}
}
