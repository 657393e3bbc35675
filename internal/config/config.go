// Package config reads and writes the .fileflow.yaml configuration file.
package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/fileflow/internal/analysis/dataflow"
)

// DefaultPath is the configuration file looked up by the CLI.
const DefaultPath = ".fileflow.yaml"

// Domain names accepted in the configuration.
const (
	DomainReachability = "reachability"
	DomainLabels       = "labels"
	DomainPresence     = "presence"
)

// KnownDomains lists every domain name in the order reports show them.
var KnownDomains = []string{DomainReachability, DomainLabels, DomainPresence}

// Config represents the overall configuration.
type Config struct {
	Name     string   `yaml:"name"`
	Analysis Analysis `yaml:"analysis"`
}

// Analysis configures the dataflow engine.
type Analysis struct {
	MaxIterations int      `yaml:"max_iterations"`
	Domains       []string `yaml:"domains"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Name: "fileflow",
		Analysis: Analysis{
			MaxIterations: dataflow.DefaultMaxIterations,
			Domains:       slices.Clone(KnownDomains),
		},
	}
}

// Validate checks the domain names and the iteration cap.
func (c Config) Validate() error {
	if c.Analysis.MaxIterations < 0 {
		return fmt.Errorf("max_iterations must not be negative, got %d", c.Analysis.MaxIterations)
	}
	for _, d := range c.Analysis.Domains {
		if !slices.Contains(KnownDomains, d) {
			return fmt.Errorf("unknown domain %q", d)
		}
	}
	return nil
}

// Load parses the configuration file at path. Fields missing from the file
// keep their default values.
func Load(path string) (Config, error) {
	config := Default()

	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("error parsing %s: %w", path, err)
	}
	if len(config.Analysis.Domains) == 0 {
		config.Analysis.Domains = slices.Clone(KnownDomains)
	}
	if config.Analysis.MaxIterations == 0 {
		config.Analysis.MaxIterations = dataflow.DefaultMaxIterations
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	return config, nil
}

// Write stores config at path, replacing any existing file.
func Write(path string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
