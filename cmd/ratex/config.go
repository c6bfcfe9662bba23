package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mgomes/ratex/ratex"
	"gopkg.in/yaml.v3"
)

const configFileName = ".ratex.yaml"

type cliConfig struct {
	RecursionLimit  int        `yaml:"recursion_limit"`
	StrictOperators bool       `yaml:"strict_operators"`
	LogLevel        string     `yaml:"log_level"`
	REPL            replConfig `yaml:"repl"`

	path string
}

type replConfig struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	Plain       bool   `yaml:"plain"`
}

func defaultConfig() cliConfig {
	return cliConfig{
		LogLevel: "warn",
		REPL: replConfig{
			Prompt:      "ratex> ",
			HistoryFile: ".ratex_history",
		},
	}
}

// loadConfig reads the explicit path when given, otherwise the first of
// ./.ratex.yaml and $HOME/.ratex.yaml that exists. No file means defaults.
func loadConfig(explicit string) (cliConfig, error) {
	cfg := defaultConfig()
	if explicit != "" {
		if err := decodeConfigFile(explicit, &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	candidates := []string{configFileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, configFileName))
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := decodeConfigFile(candidate, &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	return cfg, nil
}

func decodeConfigFile(path string, cfg *cliConfig) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	if cfg.RecursionLimit < 0 {
		return fmt.Errorf("config: %s: recursion_limit must not be negative", absPath)
	}
	cfg.path = absPath
	return nil
}

// interpreterFlags are the flags shared by commands that execute code.
type interpreterFlags struct {
	configPath     string
	logLevel       string
	recursionLimit int
	strict         bool
}

func (f *interpreterFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "path to a "+configFileName+" file")
	fs.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.IntVar(&f.recursionLimit, "recursion-limit", 0, "maximum call depth")
	fs.BoolVar(&f.strict, "strict", false, "fail on operators applied to unsupported operand kinds")
}

// resolve loads the configuration file and applies explicitly set flags on
// top of it.
func (f *interpreterFlags) resolve(fs *flag.FlagSet) (cliConfig, *slog.Logger, error) {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return cfg, nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "log-level":
			cfg.LogLevel = f.logLevel
		case "recursion-limit":
			cfg.RecursionLimit = f.recursionLimit
		case "strict":
			cfg.StrictOperators = f.strict
		}
	})

	logger, err := newLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		return cfg, nil, err
	}
	if cfg.path != "" {
		logger.Debug("loaded config", "path", cfg.path)
	}
	return cfg, logger, nil
}

func (c cliConfig) interpreterConfig(logger *slog.Logger) ratex.Config {
	return ratex.Config{
		Logger:          logger,
		RecursionLimit:  c.RecursionLimit,
		StrictOperators: c.StrictOperators,
	}
}
