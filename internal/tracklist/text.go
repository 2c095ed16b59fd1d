package tracklist

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jaki95/tracksplit/internal/domain"
)

// TextImporter reads the "<title> <start time>" line format.
type TextImporter struct{}

func NewTextImporter() *TextImporter {
	return &TextImporter{}
}

func (t *TextImporter) Name() string {
	return TextTracklist
}

func (t *TextImporter) Import(ctx context.Context, path string) (*domain.Tracklist, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open listing file: %w", err)
	}
	defer file.Close()

	listings, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	tracklist := &domain.Tracklist{
		Name:   tracklistName(path),
		Tracks: Build(listings),
	}
	slog.Debug("Imported tracklist", "importer", t.Name(), "path", path, "tracks", len(tracklist.Tracks))

	return tracklist, nil
}
