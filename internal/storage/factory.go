package storage

import (
	"context"
	"fmt"

	"github.com/jaki95/tracksplit/config"
)

// New returns the storage backend named by cfg.Type, writing into outputDir.
func New(ctx context.Context, cfg config.StorageConfig, outputDir string) (Storage, error) {
	switch cfg.Type {
	case TypeLocal, "":
		return NewLocalFileStorage(outputDir), nil
	case TypeGCS:
		s, err := NewGCSStorage(ctx, cfg.Bucket, cfg.ObjectPrefix, outputDir, cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
