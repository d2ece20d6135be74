// Package file provides a ModelStore that keeps one file per model.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/ostia/pkg/domain"
)

// Format selects the on-disk encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// Store implements ports.ModelStore using the local filesystem.
type Store struct {
	BasePath string
	format   Format
}

// Option configures a Store.
type Option func(*Store)

// WithFormat selects JSON (default) or YAML files.
func WithFormat(f Format) Option {
	return func(s *Store) {
		s.format = f
	}
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".ostia/models".
func New(basePath string, opts ...Option) *Store {
	if basePath == "" {
		basePath = filepath.Join(".ostia", "models")
	}
	s := &Store{BasePath: basePath, format: JSON}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) ext() string { return "." + string(s.format) }

func (s *Store) path(id string) string {
	return filepath.Join(s.BasePath, id+s.ext())
}

func validID(id string) error {
	if id == "" {
		return fmt.Errorf("model ID cannot be empty")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("invalid model ID %q", id)
	}
	return nil
}

func (s *Store) marshal(model *domain.Model) ([]byte, error) {
	if s.format == YAML {
		return yaml.Marshal(model)
	}
	return json.MarshalIndent(model, "", "  ")
}

func (s *Store) unmarshal(data []byte, model *domain.Model) error {
	if s.format == YAML {
		return yaml.Unmarshal(data, model)
	}
	return json.Unmarshal(data, model)
}

// Save writes the model atomically: temp file, fsync, rename.
func (s *Store) Save(ctx context.Context, model *domain.Model) error {
	if err := validID(model.ID); err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure model directory: %w", err)
	}

	data, err := s.marshal(model)
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	// same directory so the rename stays on one filesystem
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+model.ID+"-*"+s.ext())
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath := s.path(model.ID)
	// Windows refuses to rename over an existing file.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing model file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads a model file.
func (s *Store) Load(ctx context.Context, id string) (*domain.Model, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrModelNotFound
		}
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	var model domain.Model
	if err := s.unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model: %w", err)
	}
	return &model, nil
}

// Delete removes the model file.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete model file: %w", err)
	}
	return nil
}

// List returns the IDs of all model files, ignoring leftover temp files.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != s.ext() || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, s.ext()))
	}
	sort.Strings(ids)
	return ids, nil
}
