package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"coursework_tracker/internal/common"
)

// ArtifactStore keeps uploaded submission archives in one flat directory
// shared with the runner.
type ArtifactStore struct {
	dir string
	now func() time.Time
}

func NewArtifactStore(dir string) (*ArtifactStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating submissions directory: %w", err)
	}
	return &ArtifactStore{dir: dir, now: time.Now}, nil
}

// Save writes data under a disambiguated name derived from originalName and
// returns that name. It never overwrites an existing file.
func (s *ArtifactStore) Save(originalName string, data []byte) (string, error) {
	name := common.StoredArtifactName(originalName, s.now())
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return name, nil
}

func (s *ArtifactStore) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

func (s *ArtifactStore) Remove(name string) error {
	return os.Remove(s.Path(name))
}
