package tracklist

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/jaki95/tracksplit/internal/domain"
)

// Importer imports a tracklist from a listing file.
type Importer interface {
	Import(ctx context.Context, path string) (*domain.Tracklist, error)
	Name() string
}

const (
	TextTracklist = "text"
	CSVTracklist  = "csv"
)

// NewImporter picks an importer from the listing file's extension. Anything
// that is not a .csv file is read as a plain text listing.
func NewImporter(path string) Importer {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return NewCSVImporter()
	}
	return NewTextImporter()
}

func tracklistName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
