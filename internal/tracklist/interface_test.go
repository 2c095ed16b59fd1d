package tracklist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaki95/tracksplit/internal/domain"
)

func writeListing(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewImporter(t *testing.T) {
	tests := []struct {
		path         string
		expectedType string
		expectedName string
	}{
		{path: "set.txt", expectedType: "*tracklist.TextImporter", expectedName: TextTracklist},
		{path: "set", expectedType: "*tracklist.TextImporter", expectedName: TextTracklist},
		{path: "set.csv", expectedType: "*tracklist.CSVImporter", expectedName: CSVTracklist},
		{path: "SET.CSV", expectedType: "*tracklist.CSVImporter", expectedName: CSVTracklist},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			importer := NewImporter(tt.path)
			assert.Equal(t, tt.expectedType, fmt.Sprintf("%T", importer))
			assert.Equal(t, tt.expectedName, importer.Name())
		})
	}
}

func TestTextImporter(t *testing.T) {
	path := writeListing(t, "la-cigale.txt", "Intro 0:00\nLucky I Got What I Want 37:05\nDrops 42:09\n")

	tracklist, err := NewTextImporter().Import(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "la-cigale", tracklist.Name)
	assert.Equal(t, []*domain.Track{
		{Title: "Intro", TrackNumber: 1, StartTime: "0:00", EndTime: "37:05"},
		{Title: "Lucky I Got What I Want", TrackNumber: 2, StartTime: "37:05", EndTime: "42:09"},
		{Title: "Drops", TrackNumber: 3, StartTime: "42:09"},
	}, tracklist.Tracks)
}

func TestTextImporterErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		tracklist, err := NewTextImporter().Import(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Nil(t, tracklist)
	})

	t.Run("malformed line", func(t *testing.T) {
		path := writeListing(t, "bad.txt", "Intro 0:00\nBroken\n")
		tracklist, err := NewTextImporter().Import(context.Background(), path)
		assert.ErrorIs(t, err, ErrMalformedLine)
		assert.Nil(t, tracklist)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewTextImporter().Import(ctx, "unused.txt")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeListing(t, "empty.txt", "")
		tracklist, err := NewTextImporter().Import(context.Background(), path)
		require.NoError(t, err)
		assert.Empty(t, tracklist.Tracks)
	})
}

func TestCSVImporter(t *testing.T) {
	content := "Intro,0:00\n\n\"Hello, Goodbye\", 3:10\nOutro,7:45\n"
	path := writeListing(t, "set.csv", content)

	tracklist, err := NewCSVImporter().Import(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "set", tracklist.Name)
	assert.Equal(t, []*domain.Track{
		{Title: "Intro", TrackNumber: 1, StartTime: "0:00", EndTime: "3:10"},
		{Title: "Hello, Goodbye", TrackNumber: 2, StartTime: "3:10", EndTime: "7:45"},
		{Title: "Outro", TrackNumber: 3, StartTime: "7:45"},
	}, tracklist.Tracks)
}

func TestCSVImporterSkipsWhitespaceRows(t *testing.T) {
	path := writeListing(t, "set.csv", "Intro,0:00\n   \nDrops,1:00\n")

	tracklist, err := NewCSVImporter().Import(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, []*domain.Track{
		{Title: "Intro", TrackNumber: 1, StartTime: "0:00", EndTime: "1:00"},
		{Title: "Drops", TrackNumber: 2, StartTime: "1:00"},
	}, tracklist.Tracks)
}

func TestCSVImporterMalformedRow(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
	}{
		{name: "single field", content: "Intro,0:00\nBroken\n", line: 2},
		{name: "empty start time", content: "Intro,\n", line: 1},
		{name: "empty title", content: ",1:00\n", line: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeListing(t, "bad.csv", tt.content)

			_, err := NewCSVImporter().Import(context.Background(), path)

			var lineErr *LineError
			require.ErrorAs(t, err, &lineErr)
			assert.ErrorIs(t, err, ErrMalformedLine)
			assert.Equal(t, tt.line, lineErr.Line)
		})
	}
}
