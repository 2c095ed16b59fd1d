package tracklist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jaki95/tracksplit/internal/domain"
)

// maxLineSize bounds a single listing line.
const maxLineSize = 1024 * 1024

var ErrMalformedLine = errors.New("malformed listing line")

// LineError reports a listing line that could not be split into a title and
// a start time.
type LineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *LineError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s: %q", ErrMalformedLine, e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s: %s: %q", ErrMalformedLine, e.Reason, e.Text)
}

func (e *LineError) Unwrap() error {
	return ErrMalformedLine
}

// ParseLine splits a listing line such as "Lucky I Got What I Want 37:05".
// The last space-separated token is the start time and every token before it,
// rejoined with single spaces, is the title. Titles ending in something that
// looks like a timestamp are ambiguous by construction and are not special-cased.
func ParseLine(line string) (domain.Listing, error) {
	idx := strings.LastIndex(line, " ")
	if idx < 0 {
		return domain.Listing{}, &LineError{Text: line, Reason: "no space between title and start time"}
	}

	title, startTime := line[:idx], line[idx+1:]
	if startTime == "" {
		return domain.Listing{}, &LineError{Text: line, Reason: "missing start time"}
	}
	if strings.TrimSpace(title) == "" {
		return domain.Listing{}, &LineError{Text: line, Reason: "missing title"}
	}

	return domain.Listing{Title: title, StartTime: startTime}, nil
}

// Parse reads one listing per line. Blank lines are skipped; the first
// malformed line aborts the parse.
func Parse(r io.Reader) ([]domain.Listing, error) {
	var listings []domain.Listing

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		listing, err := ParseLine(line)
		if err != nil {
			var lineErr *LineError
			if errors.As(err, &lineErr) {
				lineErr.Line = lineNumber
			}
			return nil, err
		}
		listings = append(listings, listing)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read listing: %w", err)
	}

	return listings, nil
}
