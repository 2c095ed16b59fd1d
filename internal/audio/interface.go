package audio

import (
	"context"

	"github.com/jaki95/tracksplit/internal/domain"
)

// Processor cuts a single track out of a recording and tags it.
type Processor interface {
	Split(ctx context.Context, sp SplitParams) error
}

type SplitParams struct {
	InputPath  string
	OutputPath string
	Track      domain.Track
}
