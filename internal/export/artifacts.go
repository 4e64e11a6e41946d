package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrArtifactNotFound is returned when a previously exported file is gone
// (bad filename, or removed by cleanup).
var ErrArtifactNotFound = errors.New("export file not found")

// ArtifactStore keeps finished export files in a local directory, keyed by
// generated filename.
type ArtifactStore struct {
	dir string
}

func NewArtifactStore(dir string) (*ArtifactStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &ArtifactStore{dir: dir}, nil
}

func (a *ArtifactStore) Save(filename string, data []byte) error {
	if err := a.checkName(filename); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(a.dir, filename), data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

func (a *ArtifactStore) Read(filename string) ([]byte, error) {
	if err := a.checkName(filename); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(a.dir, filename))
	if os.IsNotExist(err) {
		return nil, ErrArtifactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read export file: %w", err)
	}
	return data, nil
}

// Cleanup removes artifacts whose modification time is older than maxAge and
// reports how many were removed.
func (a *ArtifactStore) Cleanup(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read export directory: %w", err)
	}

	now := time.Now()
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) > maxAge {
			if err := os.Remove(filepath.Join(a.dir, entry.Name())); err == nil {
				removed++
			}
		}
	}

	return removed, nil
}

// checkName rejects path traversal; artifacts are addressed by bare filename.
func (a *ArtifactStore) checkName(filename string) error {
	if filename == "" || filename != filepath.Base(filename) {
		return ErrArtifactNotFound
	}
	return nil
}
