package splitter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jaki95/tracksplit/internal/audio"
	"github.com/jaki95/tracksplit/internal/domain"
	"github.com/jaki95/tracksplit/internal/metadata"
	"github.com/jaki95/tracksplit/internal/progress"
	"github.com/jaki95/tracksplit/internal/storage"
	"github.com/jaki95/tracksplit/internal/tracklist"
)

const fileExtension = ".mp3"

// Verifier checks a written track against the record it was cut from.
type Verifier interface {
	Verify(path string, track *domain.Track) (metadata.Info, error)
}

// Processor runs the import, split and publish pipeline for one recording.
// Tracks are handled one at a time in listing order.
type Processor struct {
	audioProcessor audio.Processor
	storage        storage.Storage
	verifier       Verifier
	tracker        *progress.Tracker
}

// NewProcessor wires the pipeline. verifier may be nil to skip tag read-back.
func NewProcessor(audioProcessor audio.Processor, store storage.Storage, verifier Verifier, tracker *progress.Tracker) *Processor {
	if tracker == nil {
		tracker = progress.NewTracker()
	}
	return &Processor{
		audioProcessor: audioProcessor,
		storage:        store,
		verifier:       verifier,
		tracker:        tracker,
	}
}

type ProcessingOptions struct {
	InputPath    string
	ListingsPath string

	// ContinueOnError keeps going after a failed track and reports every
	// failure at the end instead of stopping at the first one.
	ContinueOnError bool

	// DryRun imports the listing and logs the planned tracks without
	// running ffmpeg.
	DryRun bool
}

// Filename is the output file name for a track. The title is used as is:
// path separators or reserved characters in it are not sanitised, and two
// tracks with the same title write to the same file.
func Filename(track *domain.Track) string {
	return track.Title + fileExtension
}

// Process imports the listing and emits one file per track. It returns the
// published location of every track that was written.
func (p *Processor) Process(ctx context.Context, opts *ProcessingOptions) ([]string, error) {
	results, err := p.process(ctx, opts)
	if err != nil {
		p.tracker.SetError(err)
		return results, err
	}
	return results, nil
}

func (p *Processor) process(ctx context.Context, opts *ProcessingOptions) ([]string, error) {
	if err := audio.ValidateFile(opts.InputPath); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	p.tracker.UpdateStage(progress.StageImporting, "Reading track listing...")
	importer := tracklist.NewImporter(opts.ListingsPath)
	set, err := importer.Import(ctx, opts.ListingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to import tracklist: %w", err)
	}
	slog.Info("Imported tracklist", "name", set.Name, "importer", importer.Name(), "trackCount", len(set.Tracks))

	if opts.DryRun {
		for _, track := range set.Tracks {
			slog.Info("Planned track",
				"track", track.TrackNumber,
				"title", track.Title,
				"start", track.StartTime,
				"end", track.EndTime,
				"output", filepath.Join(p.storage.OutputDir(), Filename(track)),
			)
		}
		p.tracker.UpdateStage(progress.StageComplete, "Dry run completed")
		return nil, nil
	}

	if err := p.storage.Prepare(ctx); err != nil {
		return nil, err
	}

	return p.splitTracks(ctx, opts.InputPath, set, opts.ContinueOnError)
}

// splitTracks performs the ffmpeg splitting and tagging for each track.
func (p *Processor) splitTracks(ctx context.Context, inputPath string, set *domain.Tracklist, continueOnError bool) ([]string, error) {
	var results []string
	var failures []error
	totalTracks := len(set.Tracks)

	p.tracker.UpdateStage(progress.StageSplitting, "Splitting tracks...")

	for i, track := range set.Tracks {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		published, err := p.emitTrack(ctx, inputPath, track)
		if err != nil {
			err = fmt.Errorf("failed to process track %d (%s): %w", track.TrackNumber, track.Title, err)
			if !continueOnError || ctx.Err() != nil {
				return results, err
			}
			slog.Error("Track failed, continuing", "track", track.TrackNumber, "title", track.Title, "error", err)
			failures = append(failures, err)
		} else {
			results = append(results, published)
		}

		p.tracker.UpdateTrackProgress(track.TrackNumber, totalTracks, i+1, track.Title)
	}

	if len(failures) > 0 {
		return results, fmt.Errorf("%d of %d tracks failed: %w", len(failures), totalTracks, errors.Join(failures...))
	}

	p.tracker.UpdateStage(progress.StageComplete, "Processing completed")
	return results, nil
}

func (p *Processor) emitTrack(ctx context.Context, inputPath string, track *domain.Track) (string, error) {
	outputPath := filepath.Join(p.storage.OutputDir(), Filename(track))

	splitParams := audio.SplitParams{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Track:      *track,
	}
	if err := p.audioProcessor.Split(ctx, splitParams); err != nil {
		return "", err
	}

	if p.verifier != nil {
		info, err := p.verifier.Verify(outputPath, track)
		if err != nil {
			return "", err
		}
		slog.Debug("Verified track tags", "file", outputPath, "duration", info.Duration)
	}

	published, err := p.storage.Publish(ctx, outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to publish %s: %w", outputPath, err)
	}

	slog.Debug("Track written", "track", track.TrackNumber, "title", track.Title, "location", published)
	return published, nil
}
