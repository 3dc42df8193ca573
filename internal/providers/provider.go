package providers

import (
	"context"
	"time"
)

type Series struct {
	Title string
	Path  string
}

type SeriesDetails struct {
	Series
	Cover     string
	Authors   string
	Tags      []string
	Completed bool
}

// Number and Volume are -1 when the filename carries no usable numbering.
type Chapter struct {
	URL    string
	Title  string
	Number float64
	Volume float64
	Date   time.Time
	Label  string
}

type Source interface {
	Recent(ctx context.Context) ([]Series, error)
	Search(ctx context.Context, query string) ([]Series, error)
	Details(ctx context.Context, path string) (SeriesDetails, error)
	Chapters(ctx context.Context, path string) ([]Chapter, error)
	Pages(ctx context.Context, readerURL string) ([]string, error)
}
