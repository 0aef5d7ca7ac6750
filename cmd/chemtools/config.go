package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultConfigSearchPaths are checked in order; the first existing file
// wins.
var DefaultConfigSearchPaths = []string{
	"chemtools.toml",
	filepath.Join(os.Getenv("HOME"), ".chemtools.toml"),
	filepath.Join(os.Getenv("HOME"), ".config", "chemtools.toml"),
}

// Config is the TOML configuration struct.  When a configuration file
// exists, the values contained therein override the compiled-in defaults.
type Config struct {
	File string `toml:"-"`

	Output        string   `toml:"output"`
	DB            string   `toml:"db"`
	Topics        []string `toml:"topics"`
	Seeds         []string `toml:"seeds"`
	MinStars      int      `toml:"min_stars"`
	GitHubToken   string   `toml:"github_token"`
	Concurrency   int      `toml:"concurrency"`
	MaxRetries    int      `toml:"max_retries"`
	Reference     string   `toml:"reference"`
	MetricsOutput string   `toml:"metrics_output"`
	Schedule      string   `toml:"schedule"`
	CacheTTL      string   `toml:"cache_ttl"`
	Quiet         bool     `toml:"quiet"`
	Verbose       bool     `toml:"verbose"`
}

func NewConfig() *Config {
	return &Config{}
}

// Do locates, parses and applies a configuration file.  No file is not an
// error.
func (config *Config) Do() error {
	file, err := findConfigFile()
	if err != nil {
		return errors.Wrap(err, "locating chemtools TOML configuration")
	}
	if len(file) == 0 {
		return nil
	}

	if err := config.parse(file); err != nil {
		return errors.Wrapf(err, "parsing chemtools TOML configuration file %q", file)
	}
	if err := config.Apply(); err != nil {
		return errors.Wrapf(err, "applying chemtools TOML configuration file %q", file)
	}
	log.WithField("file", file).Debug("Applied configuration")
	return nil
}

func (config *Config) Apply() error {
	if len(config.Output) > 0 {
		Output = config.Output
	}
	if len(config.DB) > 0 {
		DBFile = config.DB
	}
	if len(config.Topics) > 0 {
		Topics = config.Topics
	}
	if len(config.Seeds) > 0 {
		Seeds = config.Seeds
	}
	if config.MinStars > 0 {
		MinStars = config.MinStars
	}
	if len(config.GitHubToken) > 0 {
		GitHubToken = config.GitHubToken
	}
	if config.Concurrency > 0 {
		Concurrency = config.Concurrency
	}
	if config.MaxRetries > 0 {
		MaxRetries = config.MaxRetries
	}
	if len(config.Reference) > 0 {
		ReferenceFile = config.Reference
	}
	if len(config.MetricsOutput) > 0 {
		MetricsOutput = config.MetricsOutput
	}
	if len(config.Schedule) > 0 {
		Schedule = config.Schedule
	}
	if len(config.CacheTTL) > 0 {
		ttl, err := time.ParseDuration(config.CacheTTL)
		if err != nil {
			return errors.Wrap(err, "cache_ttl")
		}
		CacheTTL = ttl
	}
	if config.Quiet {
		Quiet = true
	}
	if config.Verbose {
		Verbose = true
	}
	return nil
}

func (config *Config) parse(file string) error {
	if _, err := toml.DecodeFile(file, config); err != nil {
		return err
	}
	config.File = file
	return nil
}

// findConfigFile returns the first existing DefaultConfigSearchPaths entry.
//
// If no config file is found, ("", nil) is returned.
func findConfigFile() (string, error) {
	for _, path := range DefaultConfigSearchPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if os.IsNotExist(err) {
			continue
		} else if err != nil {
			return "", err
		}
	}
	return "", nil
}
