// Package config loads satbatch settings from JSON, TOML or YAML files.
//
// Every format is first decoded into a generic map and then mapped onto Config with
// mapstructure, so the same keys work regardless of the file type.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/limaJavier/satbatch/pkg/batch"
	"github.com/limaJavier/satbatch/pkg/sat"
)

const (
	DefaultFileName = "config.json"

	LayoutFlat   = "flat"
	LayoutMirror = "mirror"
)

var layouts = map[string]batch.Layout{
	LayoutFlat:   batch.LayoutFlat,
	LayoutMirror: batch.LayoutMirror,
}

var (
	validLayouts    = []string{LayoutFlat, LayoutMirror}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"console", "json"}
)

type Config struct {
	BaseDirectory    string            `mapstructure:"baseDirectory"`
	ResultsDirectory string            `mapstructure:"resultsDirectory"`
	Solver           string            `mapstructure:"solver"`
	Executable       string            `mapstructure:"executable"` // Explicit path; wins over Solver
	Solvers          map[string]string `mapstructure:"solvers"`
	Suffix           string            `mapstructure:"suffix"`
	OutputSuffix     string            `mapstructure:"outputSuffix"`
	Timeout          time.Duration     `mapstructure:"timeout"`
	Force            bool              `mapstructure:"force"`
	Layout           string            `mapstructure:"layout"`
	LogLevel         string            `mapstructure:"logLevel"`
	LogFormat        string            `mapstructure:"logFormat"`
}

func Default() Config {
	return Config{
		Solver:       sat.DefaultSolver,
		Solvers:      map[string]string{},
		Suffix:       ".cnf",
		OutputSuffix: ".out",
		Layout:       LayoutFlat,
		LogLevel:     "info",
		LogFormat:    "console",
	}
}

// Load reads path on top of Default. The decoder is chosen from the file extension.
func Load(path string) (Config, error) {
	cfg := Default()

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config file: %w", err)
	}

	raw := make(map[string]any)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(bytes, &raw)
	case ".toml":
		err = toml.Unmarshal(bytes, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &raw)
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("cannot parse config file %v: %w", path, err)
	}

	if err := decode(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("cannot decode config file %v: %w", path, err)
	}
	return cfg, nil
}

// Locate returns the config.json lying next to the running executable, or "" if there is none.
func Locate() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	candidate := filepath.Join(filepath.Dir(execPath), DefaultFileName)
	if info, err := os.Stat(candidate); err != nil || info.IsDir() {
		return ""
	}
	return candidate
}

func decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// ExecutablePath resolves the solver binary: an explicit Executable wins, otherwise the
// Solver name is looked up through Solvers and the built-in defaults.
func (c Config) ExecutablePath() (string, error) {
	if strings.TrimSpace(c.Executable) != "" {
		return c.Executable, nil
	}
	return sat.ExecutablePath(c.Solver, c.Solvers)
}

// RunnerOptions translates the file matching, output and reset settings into batch
// options. The executable is left to the caller.
func (c Config) RunnerOptions() []batch.Option {
	return []batch.Option{
		batch.WithSuffix(c.Suffix),
		batch.WithOutputSuffix(c.OutputSuffix),
		batch.WithTimeout(c.Timeout),
		batch.WithForce(c.Force),
		batch.WithLayout(layouts[strings.ToLower(c.Layout)]),
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Suffix == "" {
		errs = append(errs, errors.New("suffix must not be empty"))
	}
	if c.OutputSuffix == "" {
		errs = append(errs, errors.New("outputSuffix must not be empty"))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative: %v", c.Timeout))
	}
	if !slices.Contains(validLayouts, strings.ToLower(c.Layout)) {
		errs = append(errs, fmt.Errorf("%v is not a valid layout", c.Layout))
	}
	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		errs = append(errs, fmt.Errorf("%v is not a valid log level", c.LogLevel))
	}
	if !slices.Contains(validLogFormats, strings.ToLower(c.LogFormat)) {
		errs = append(errs, fmt.Errorf("%v is not a valid log format", c.LogFormat))
	}
	if _, err := c.ExecutablePath(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
