package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest lists yearly sources in a YAML file:
//
//	base_dir: data
//	sources:
//	  - annual_aqi_by_county_2021.csv
//	  - https://aqs.epa.gov/aqsweb/airdata/annual_aqi_by_county_2022.csv
//
// Relative local paths are resolved against base_dir, which is itself
// relative to the manifest's directory.
type Manifest struct {
	BaseDir string   `yaml:"base_dir"`
	Sources []string `yaml:"sources"`
}

// LoadManifest reads and resolves a source manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(m.Sources) == 0 {
		return nil, errors.New("manifest lists no sources")
	}

	base := filepath.Join(filepath.Dir(path), m.BaseDir)
	resolved := make([]string, 0, len(m.Sources))
	for _, s := range m.Sources {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !IsRemote(s) && !filepath.IsAbs(s) {
			s = filepath.Join(base, s)
		}
		resolved = append(resolved, s)
	}
	m.Sources = resolved
	return &m, nil
}

// IsRemote reports whether a source location is an http(s) URL.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
