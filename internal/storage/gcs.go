package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

var ErrMissingBucket = errors.New("gcs bucket not configured")

// GCSStorage uploads each written track to Google Cloud Storage.
type GCSStorage struct {
	client       *storage.Client
	bucket       string
	objectPrefix string
	outputDir    string
}

// NewGCSStorage creates a new GCSStorage instance. Tracks are staged in
// outputDir before upload.
func NewGCSStorage(ctx context.Context, bucketName, objectPrefix, outputDir, credentialsFile string) (*GCSStorage, error) {
	if bucketName == "" {
		return nil, ErrMissingBucket
	}

	var client *storage.Client
	var err error

	if credentialsFile != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	} else {
		// Use application default credentials
		client, err = storage.NewClient(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStorage{
		client:       client,
		bucket:       bucketName,
		objectPrefix: strings.Trim(objectPrefix, "/"),
		outputDir:    outputDir,
	}, nil
}

func (s *GCSStorage) OutputDir() string {
	return s.outputDir
}

func (s *GCSStorage) Prepare(ctx context.Context) error {
	if err := checkDir(s.outputDir); err != nil {
		return err
	}

	if _, err := s.client.Bucket(s.bucket).Attrs(ctx); err != nil {
		return fmt.Errorf("failed to access bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Publish uploads a local file and returns its gs:// URL.
func (s *GCSStorage) Publish(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", localPath, err)
	}
	defer f.Close()

	objectName := objectName(s.objectPrefix, localPath)

	ctx, cancel := context.WithTimeout(ctx, time.Minute*5)
	defer cancel()

	wc := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	wc.ContentType = "audio/mpeg"
	if _, err = io.Copy(wc, f); err != nil {
		wc.Close()
		return "", fmt.Errorf("failed to copy file to GCS: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}

	url := fmt.Sprintf("gs://%s/%s", s.bucket, objectName)
	slog.Debug("Uploaded track", "file", localPath, "url", url)
	return url, nil
}

// Close closes the GCS client
func (s *GCSStorage) Close() error {
	return s.client.Close()
}

func objectName(prefix, localPath string) string {
	name := filepath.Base(localPath)
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
