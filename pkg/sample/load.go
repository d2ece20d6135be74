package sample

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a set from a YAML or JSON file, chosen by extension.
// A set without a name is named after the file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample file: %w", err)
	}

	format := "yaml"
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		format = "json"
	}
	set, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if set.Name == "" {
		set.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return set, nil
}

// Parse decodes a set. format is "json" or "yaml".
func Parse(data []byte, format string) (*Set, error) {
	var set Set
	if format == "json" {
		if err := json.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("failed to parse sample json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("failed to parse sample yaml: %w", err)
		}
	}
	if set.Len() == 0 {
		return nil, ErrEmptySet
	}
	return &set, nil
}
