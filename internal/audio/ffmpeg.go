// Package audio trims tracks out of a recording with FFmpeg. The audio stream
// is copied without re-encoding and only the container metadata is rewritten.
package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const defaultFFmpegPath = "ffmpeg"

var (
	ErrFileNotFound  = errors.New("file not found")
	ErrFileEmpty     = errors.New("file is empty")
	ErrInvalidPath   = errors.New("invalid path")
	ErrMissingStart  = errors.New("missing start time")
	ErrMissingOutput = errors.New("missing output path")
)

// ffmpegError wraps FFmpeg command errors with additional context
type ffmpegError struct {
	cmd     string
	output  string
	wrapped error
}

func (e *ffmpegError) Error() string {
	return fmt.Sprintf("ffmpeg error: %s\nCommand: %s\nOutput: %s", e.wrapped, e.cmd, e.output)
}

func (e *ffmpegError) Unwrap() error {
	return e.wrapped
}

// newFFmpegError creates a new ffmpegError with truncated command output
func newFFmpegError(cmd *exec.Cmd, output []byte, err error) error {
	cmdStr := cmd.String()
	if len(cmdStr) > 200 {
		cmdStr = cmdStr[:200] + "..."
	}
	return &ffmpegError{
		cmd:     cmdStr,
		output:  string(output),
		wrapped: err,
	}
}

type commandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

type ffmpeg struct {
	binary  string
	command commandFunc
}

// NewFFMPEGEngine returns a Processor that runs the given ffmpeg binary.
// An empty path falls back to "ffmpeg" on $PATH.
func NewFFMPEGEngine(binary string) *ffmpeg {
	if binary == "" {
		binary = defaultFFmpegPath
	}
	return &ffmpeg{
		binary:  binary,
		command: exec.CommandContext,
	}
}

// ValidateFile checks that path is an existing, non-empty regular file.
func ValidateFile(path string) error {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("unable to access file: %s: %w", path, err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidPath, path)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrFileEmpty, path)
	}

	return nil
}

func (f *ffmpeg) Split(ctx context.Context, opts SplitParams) error {
	if err := ValidateFile(opts.InputPath); err != nil {
		return fmt.Errorf("track splitting failed: %w", err)
	}

	args, err := splitArgs(opts)
	if err != nil {
		return fmt.Errorf("track %d: %w", opts.Track.TrackNumber, err)
	}

	slog.Debug("Extracting track",
		"input", opts.InputPath,
		"output", opts.OutputPath,
		"track", opts.Track.TrackNumber,
		"start", opts.Track.StartTime,
		"end", opts.Track.EndTime,
	)

	cmd := f.command(ctx, f.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return newFFmpegError(cmd, output, err)
	}

	return nil
}

// splitArgs builds the ffmpeg argument vector for one track. Seeking happens
// on the input side; -to is left out for an unbounded track so ffmpeg copies
// through to the end of the recording.
func splitArgs(opts SplitParams) ([]string, error) {
	if opts.Track.StartTime == "" {
		return nil, ErrMissingStart
	}
	if opts.OutputPath == "" {
		return nil, ErrMissingOutput
	}

	args := []string{
		"-y",
		"-ss", opts.Track.StartTime,
	}

	if opts.Track.HasEndTime() {
		args = append(args, "-to", opts.Track.EndTime)
	}

	args = append(args,
		"-i", pathArg(opts.InputPath),
		"-c:a", "copy",
		"-metadata:g:0", "title="+opts.Track.Title,
		"-metadata:g:1", "track="+strconv.Itoa(opts.Track.TrackNumber),
		pathArg(opts.OutputPath),
	)

	return args, nil
}

// pathArg keeps a relative path that starts with "-" from being read as an
// ffmpeg option.
func pathArg(path string) string {
	if strings.HasPrefix(path, "-") && !filepath.IsAbs(path) {
		return "." + string(filepath.Separator) + path
	}
	return path
}
