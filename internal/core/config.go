package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigName is read from the working directory when no config file is named.
const DefaultConfigName = ".fixlinks.yaml"

// Config represents the .fixlinks.yaml configuration file.
type Config struct {
	Exclude        []string `yaml:"exclude"`
	SortCandidates bool     `yaml:"sort_candidates"`
	KeepFragment   bool     `yaml:"keep_fragment"`
	Jobs           int      `yaml:"jobs"`
	Journal        string   `yaml:"journal"`
}

// LoadConfig reads the config file at path, or DefaultConfigName if path is empty.
// A missing default file yields a zero Config; a missing named file is an error.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := validateGlobPatterns(cfg.Exclude); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: jobs must be >= 0", path)
	}
	return cfg, nil
}
