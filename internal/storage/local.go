package storage

import (
	"context"
	"fmt"
	"os"
)

// LocalFileStorage keeps tracks in an existing local directory.
type LocalFileStorage struct {
	outputDir string
}

// NewLocalFileStorage creates a new local file storage instance. The directory
// is not created; Prepare fails if it is missing.
func NewLocalFileStorage(outputDir string) *LocalFileStorage {
	return &LocalFileStorage{outputDir: outputDir}
}

func (s *LocalFileStorage) OutputDir() string {
	return s.outputDir
}

func (s *LocalFileStorage) Prepare(ctx context.Context) error {
	return checkDir(s.outputDir)
}

// Publish returns the path unchanged; the file is already in place.
func (s *LocalFileStorage) Publish(ctx context.Context, localPath string) (string, error) {
	return localPath, nil
}

func (s *LocalFileStorage) Close() error {
	return nil
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrOutputDirNotFound, dir)
		}
		return fmt.Errorf("unable to access output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrOutputDirNotFound, dir)
	}
	return nil
}
