// Package config loads the source registry configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lunch-radar/internal/domain/entity"
)

// SourcesFile is the on-disk shape of the source registry.
type SourcesFile struct {
	Sources []entity.SourceDescriptor `yaml:"sources"`
}

// LoadSources reads and validates the source descriptors from a YAML file.
// Every descriptor must validate; a single malformed source rejects the
// whole file so a typo cannot silently drop a restaurant from the crawl.
func LoadSources(path string) ([]entity.SourceDescriptor, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	return ParseSources(data)
}

// ParseSources parses and validates source descriptors from YAML bytes.
func ParseSources(data []byte) ([]entity.SourceDescriptor, error) {
	var file SourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse sources yaml: %w", err)
	}
	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("sources file contains no sources")
	}

	seen := make(map[string]bool, len(file.Sources))
	for i := range file.Sources {
		d := &file.Sources[i]
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("source %d (%s): %w", i, d.ID, err)
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("source %d: duplicate id %q", i, d.ID)
		}
		seen[d.ID] = true
	}
	return file.Sources, nil
}
