package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/validation"

	"gopkg.in/yaml.v3"
)

// YAMLStore keeps the session in a single YAML file.
type YAMLStore struct {
	path   string
	logger logging.Logger
}

// NewYAMLStore creates a store for filename. Relative names are looked up
// with FindConfigFile; when absent the file is created in the working directory.
func NewYAMLStore(filename string, logger logging.Logger) *YAMLStore {
	if logger == nil {
		logger = logging.Nop()
	}
	path := filename
	if found, err := FindConfigFile(filename); err == nil {
		path = found
	}
	return &YAMLStore{path: path, logger: logger}
}

// Path returns the session file path.
func (s *YAMLStore) Path() string { return s.path }

// FindConfigFile looks for a file in the working directory, in
// .gl-analyzer/ and in $HOME/.gl-analyzer/.
func FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join(".gl-analyzer", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".gl-analyzer", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// Load reads the session. A missing file yields a fresh session.
func (s *YAMLStore) Load(_ context.Context) (Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("No session file, starting fresh", logging.F(logging.FieldFile, s.path))
		return NewSession(), nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("error reading session file: %w", err)
	}

	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("error parsing session file %s: %w", s.path, err)
	}
	sess.normalize()

	if info, err := os.Stat(s.path); err == nil {
		if err := validation.IsValidFilePermissions(info.Mode().Perm()); err != nil {
			s.logger.WithError(err).Warn("Session file is readable by others", logging.F(logging.FieldFile, s.path))
		}
	}

	s.logger.Debug("Loaded session",
		logging.F(logging.FieldFile, s.path),
		logging.F("overrides", len(sess.Overrides)),
		logging.F("goals", len(sess.Goals)))
	return sess, nil
}

// Save writes the session, creating the parent directory as needed.
func (s *YAMLStore) Save(_ context.Context, sess Session) error {
	data, err := yaml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("error marshaling session: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating directory for session file: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("error writing session file: %w", err)
	}

	s.logger.Info("Saved session", logging.F(logging.FieldFile, s.path))
	return nil
}

// Reset deletes the session file.
func (s *YAMLStore) Reset(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error removing session file: %w", err)
	}
	s.logger.Info("Session reset", logging.F(logging.FieldFile, s.path))
	return nil
}

// Close is a no-op.
func (s *YAMLStore) Close() error { return nil }
