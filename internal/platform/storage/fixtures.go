package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
)

// ErrFixtureDirExists means a directory for the slug is already on disk.
var ErrFixtureDirExists = errors.New("fixture directory already exists")

const fixtureTestsDir = "tests"

// FixtureStore owns <root>/<slug>/tests/<fixture>, the layout the runner reads.
type FixtureStore struct {
	root string
}

func NewFixtureStore(root string) (*FixtureStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating tasks directory: %w", err)
	}
	return &FixtureStore{root: root}, nil
}

func (s *FixtureStore) Dir(assignmentSlug string) string {
	return filepath.Join(s.root, assignmentSlug)
}

// Create makes the slug directory and writes the single fixture file into it.
// It refuses to reuse an existing directory and removes what it created if
// any later step fails.
func (s *FixtureStore) Create(assignmentSlug, fileName string, data []byte) (string, error) {
	if !slug.IsSlug(assignmentSlug) {
		return "", fmt.Errorf("invalid fixture directory name %q", assignmentSlug)
	}
	dir := s.Dir(assignmentSlug)
	if err := os.Mkdir(dir, 0755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", ErrFixtureDirExists
		}
		return "", err
	}

	path := filepath.Join(dir, fixtureTestsDir, fileName)
	if err := os.Mkdir(filepath.Dir(path), 0755); err != nil {
		os.RemoveAll(dir)
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		os.RemoveAll(dir)
		return "", err
	}
	return path, nil
}

func (s *FixtureStore) Exists(assignmentSlug string) bool {
	info, err := os.Stat(s.Dir(assignmentSlug))
	return err == nil && info.IsDir()
}

// Remove deletes the slug directory recursively. Missing directories are not an error.
func (s *FixtureStore) Remove(assignmentSlug string) error {
	if !slug.IsSlug(assignmentSlug) {
		return fmt.Errorf("invalid fixture directory name %q", assignmentSlug)
	}
	return os.RemoveAll(s.Dir(assignmentSlug))
}
