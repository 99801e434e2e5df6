// Package config holds the runtime settings of the frameops tooling.
package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/l7mp/frameops/pkg/frame"
)

// Config is the runtime configuration.
type Config struct {
	// ChunkSize is the number of rows per partition of loaded frames.
	ChunkSize int `json:"chunkSize,omitempty"`
	// Parallelism limits the number of partitions processed at once, 0 means GOMAXPROCS.
	Parallelism int `json:"parallelism,omitempty"`
	// Seed is substituted for the seed -1 of runif calls when non-zero.
	Seed int64 `json:"seed,omitempty"`
	// FramePath is a JSONPath selecting the frame map inside dataset documents.
	FramePath string `json:"framePath,omitempty"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{ChunkSize: frame.DefaultChunkSize}
}

// Load reads a YAML or JSON config file on top of the defaults.
func Load(path string) (Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(b, &c); err != nil {
		return c, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	return c, c.Validate()
}

// Validate checks the ranges of the settings.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("invalid chunk size %d", c.ChunkSize)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("invalid parallelism %d", c.Parallelism)
	}
	return nil
}
