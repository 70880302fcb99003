// Package config loads and validates the YAML run configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/lexis/pkg/lexis/analyze"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

// Config is the full run configuration.
type Config struct {
	// MaxNGram is the highest n-gram order computed, 1..N.
	MaxNGram int `yaml:"max_ngram"`

	// Window is the co-occurrence sliding window size.
	Window int `yaml:"window"`

	// TopCollocations is the number of PMI-ranked bigrams kept per bundle.
	TopCollocations int `yaml:"top_collocations"`

	// Extensions restricts ingestion to these file extensions (with leading
	// dot). Empty means the built-in set.
	Extensions []string `yaml:"extensions"`

	// Workers > 1 enables parallel per-file processing.
	Workers int `yaml:"workers"`

	// FallbackLanguage is the stoplist used when a document's language has
	// no list of its own.
	FallbackLanguage string `yaml:"fallback_language"`

	// Stoplists maps language codes to YAML stopword files layered over the
	// built-in lists.
	Stoplists map[string]string `yaml:"stoplists"`

	// ResultsDir receives the report artifacts.
	ResultsDir string `yaml:"results_dir"`

	// DBPath enables the SQLite store when non-empty.
	DBPath string `yaml:"db_path"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		MaxNGram:         analyze.DefaultMaxNGram,
		Window:           analyze.DefaultWindow,
		TopCollocations:  analyze.DefaultTopCollocations,
		Workers:          1,
		FallbackLanguage: "en",
		ResultsDir:       "results",
	}
}

// Load reads a YAML config file over the defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: read %s: %v", internalerr.ErrInvalidConfig, path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parse %s: %v", internalerr.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects parameter values the pipeline cannot honor.
func (c Config) Validate() error {
	if c.MaxNGram < 1 {
		return fmt.Errorf("%w: max_ngram %d, must be >= 1", internalerr.ErrInvalidConfig, c.MaxNGram)
	}
	if c.Window < analyze.MinWindow {
		return fmt.Errorf("%w: window %d, must be >= %d", internalerr.ErrInvalidConfig, c.Window, analyze.MinWindow)
	}
	if c.TopCollocations < 1 {
		return fmt.Errorf("%w: top_collocations %d, must be >= 1", internalerr.ErrInvalidConfig, c.TopCollocations)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers %d, must be >= 1", internalerr.ErrInvalidConfig, c.Workers)
	}
	if c.FallbackLanguage == "" {
		return fmt.Errorf("%w: fallback_language is empty", internalerr.ErrInvalidConfig)
	}
	return nil
}

// AnalyzeOptions converts the metric parameters.
func (c Config) AnalyzeOptions() analyze.Options {
	return analyze.Options{
		MaxNGram:        c.MaxNGram,
		Window:          c.Window,
		TopCollocations: c.TopCollocations,
	}
}

// StoplistFile is the on-disk stopword list format.
type StoplistFile struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads one language's stopwords from a YAML file.
func LoadStoplist(path string) (*StoplistFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read stoplist %s: %v", internalerr.ErrInvalidConfig, path, err)
	}

	var sl StoplistFile
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("%w: parse stoplist %s: %v", internalerr.ErrInvalidConfig, path, err)
	}
	return &sl, nil
}
