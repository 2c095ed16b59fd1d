package storage

import (
	"context"
	"errors"
)

var ErrOutputDirNotFound = errors.New("output directory not found")

// Storage decides where emitted tracks end up. Tracks are always written to
// the local output directory first; Publish moves them to their final home.
type Storage interface {
	// OutputDir is the local directory ffmpeg writes into.
	OutputDir() string

	// Prepare checks the output location before any track is written.
	Prepare(ctx context.Context) error

	// Publish hands over a written track and returns its final location.
	Publish(ctx context.Context, localPath string) (string, error)

	Close() error
}

const (
	TypeLocal = "local"
	TypeGCS   = "gcs"
)
