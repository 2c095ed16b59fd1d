package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"

	"github.com/jaki95/tracksplit/config"
	"github.com/jaki95/tracksplit/internal/audio"
	"github.com/jaki95/tracksplit/internal/metadata"
	"github.com/jaki95/tracksplit/internal/progress"
	"github.com/jaki95/tracksplit/internal/splitter"
	"github.com/jaki95/tracksplit/internal/storage"
)

var errMissingFlag = errors.New("missing required flag")

type cliOptions struct {
	inputPath       string
	outputDir       string
	listingsPath    string
	configPath      string
	continueOnError bool
	verify          bool
	quiet           bool
	dryRun          bool
}

func parseFlags(args []string, output io.Writer) (*cliOptions, error) {
	opts := &cliOptions{}

	fs := flag.NewFlagSet("tracksplit", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.inputPath, "input", "", "Path to the input audio file (required)")
	fs.StringVar(&opts.outputDir, "output_dir", "", "Existing directory where the tracks are written (required unless set in config)")
	fs.StringVar(&opts.listingsPath, "listings", "", "Path to the track listing file (required)")
	fs.StringVar(&opts.configPath, "config", "./config/config.yaml", "Path to the config file")
	fs.BoolVar(&opts.continueOnError, "continue-on-error", false, "Keep splitting after a track fails")
	fs.BoolVar(&opts.verify, "verify", false, "Read back the tags of every written track")
	fs.BoolVar(&opts.quiet, "quiet", false, "Disable the progress bar")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Print the planned tracks without running ffmpeg")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage of %s:\n", fs.Name())
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Validate required flags with explicit checks
	if opts.inputPath == "" {
		return nil, fmt.Errorf("%w: -input", errMissingFlag)
	}
	if opts.listingsPath == "" {
		return nil, fmt.Errorf("%w: -listings", errMissingFlag)
	}

	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		slog.Error("Split failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *cliOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	setupLogging(cfg)

	outputDir := opts.outputDir
	if outputDir == "" {
		outputDir = cfg.Storage.OutputDir
	}
	if outputDir == "" {
		return fmt.Errorf("%w: -output_dir", errMissingFlag)
	}

	store, err := storage.New(ctx, cfg.Storage, outputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	var verifier splitter.Verifier
	if opts.verify || cfg.VerifyTags {
		verifier = metadata.NewInspector()
	}

	tracker := progress.NewTracker()
	tracker.AddListener(logListener)
	if cfg.ShowProgress() && !opts.quiet && !opts.dryRun {
		tracker.AddListener(newProgressBarListener())
	}

	processor := splitter.NewProcessor(audio.NewFFMPEGEngine(cfg.FFmpegPath), store, verifier, tracker)

	results, err := processor.Process(ctx, &splitter.ProcessingOptions{
		InputPath:       opts.inputPath,
		ListingsPath:    opts.listingsPath,
		ContinueOnError: opts.continueOnError || cfg.ContinueOnError,
		DryRun:          opts.dryRun,
	})
	if err != nil {
		return err
	}

	slog.Info("Split completed", "tracks", len(results), "outputDir", outputDir)
	return nil
}

func setupLogging(cfg *config.Config) {
	handlerOpts := &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)}

	var handler slog.Handler
	if cfg.LogFormat == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(handler))
}

func logListener(event progress.Event) {
	if event.TrackDetails != nil {
		slog.Debug("Track processed",
			"track", event.TrackDetails.TrackNumber,
			"title", event.TrackDetails.CurrentTrack,
			"processed", event.TrackDetails.ProcessedTracks,
			"total", event.TrackDetails.TotalTracks,
		)
		return
	}
	if event.Stage != progress.StageError {
		slog.Debug(event.Message, "stage", event.Stage)
	}
}

// newProgressBarListener draws a bar once the first track event reveals how
// many tracks there are.
func newProgressBarListener() func(progress.Event) {
	var bar *progressbar.ProgressBar

	return func(event progress.Event) {
		if event.TrackDetails == nil {
			if bar != nil && event.Stage == progress.StageComplete {
				_ = bar.Finish()
			}
			return
		}

		if bar == nil {
			bar = progressbar.NewOptions(
				event.TrackDetails.TotalTracks,
				progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetTheme(progressbar.ThemeASCII),
				progressbar.OptionFullWidth(),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Splitting tracks...[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(ansi.NewAnsiStdout())
				}),
			)
		}
		_ = bar.Set(event.TrackDetails.ProcessedTracks)
	}
}
