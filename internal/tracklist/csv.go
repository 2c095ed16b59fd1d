package tracklist

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jaki95/tracksplit/internal/domain"
)

// CSVImporter reads listings stored as "title,start_time" rows. Quoting lets
// titles contain commas, which the plain text format cannot express any
// differently from spaces.
type CSVImporter struct {
}

func NewCSVImporter() *CSVImporter {
	return &CSVImporter{}
}

func (c *CSVImporter) Name() string {
	return CSVTracklist
}

func (c *CSVImporter) Import(ctx context.Context, path string) (*domain.Tracklist, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	listings, err := c.parseListings(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	tracklist := &domain.Tracklist{
		Name:   tracklistName(path),
		Tracks: Build(listings),
	}
	slog.Debug("Imported tracklist", "importer", c.Name(), "path", path, "tracks", len(tracklist.Tracks))

	return tracklist, nil
}

func (c *CSVImporter) parseListings(r io.Reader) ([]domain.Listing, error) {
	reader := csv.NewReader(r)
	reader.Comma = ','
	reader.FieldsPerRecord = -1

	var listings []domain.Listing
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		line, _ := reader.FieldPos(0)
		text := strings.Join(record, ",")
		if len(record) < 2 {
			return nil, &LineError{Line: line, Text: text, Reason: fmt.Sprintf("expected 2 fields, got %d", len(record))}
		}

		title, startTime := record[0], strings.TrimSpace(record[1])
		if startTime == "" {
			return nil, &LineError{Line: line, Text: text, Reason: "missing start time"}
		}
		if strings.TrimSpace(title) == "" {
			return nil, &LineError{Line: line, Text: text, Reason: "missing title"}
		}

		listings = append(listings, domain.Listing{Title: title, StartTime: startTime})
	}

	return listings, nil
}
