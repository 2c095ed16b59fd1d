// Package metadata reads back the tags and duration of emitted tracks.
package metadata

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dhowden/tag"
	"github.com/tcolgate/mp3"

	"github.com/jaki95/tracksplit/internal/domain"
)

var ErrTagMismatch = errors.New("tag mismatch")

// Info is what could be read back from a written track.
type Info struct {
	Title       string
	TrackNumber int
	Duration    time.Duration
}

type Inspector struct{}

func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect reads the title and track tags of the file at path. The duration is
// best effort: it stays zero when no mp3 frame can be decoded.
func (i *Inspector) Inspect(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Info{}, fmt.Errorf("failed to read tags from %s: %w", path, err)
	}

	trackNumber, _ := m.Track()
	info := Info{
		Title:       m.Title(),
		TrackNumber: trackNumber,
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return info, fmt.Errorf("failed to rewind %s: %w", path, err)
	}
	duration, err := mp3Duration(f)
	if err != nil {
		slog.Debug("Could not decode mp3 frames", "file", path, "error", err)
	}
	info.Duration = duration

	return info, nil
}

// Verify checks that the file at path carries the title and track number of
// the given track.
func (i *Inspector) Verify(path string, track *domain.Track) (Info, error) {
	info, err := i.Inspect(path)
	if err != nil {
		return info, err
	}

	if info.Title != track.Title {
		return info, fmt.Errorf("%w: %s: title %q, want %q", ErrTagMismatch, path, info.Title, track.Title)
	}
	if info.TrackNumber != track.TrackNumber {
		return info, fmt.Errorf("%w: %s: track %d, want %d", ErrTagMismatch, path, info.TrackNumber, track.TrackNumber)
	}

	return info, nil
}

func mp3Duration(r io.Reader) (time.Duration, error) {
	dec := mp3.NewDecoder(r)
	var total time.Duration
	var skipped int
	frames := 0
	for {
		var fr mp3.Frame
		if err := dec.Decode(&fr, &skipped); err != nil {
			if errors.Is(err, io.EOF) || frames > 0 {
				break
			}
			return 0, err
		}
		total += fr.Duration()
		frames++
	}
	return total, nil
}
