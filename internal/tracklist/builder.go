package tracklist

import "github.com/jaki95/tracksplit/internal/domain"

// Build numbers the listings from 1 in their original order and gives every
// track the start time of the one after it as its end time. The last track is
// left unbounded.
func Build(listings []domain.Listing) []*domain.Track {
	if len(listings) == 0 {
		return nil
	}

	tracks := make([]*domain.Track, 0, len(listings))
	previous := listings[0]
	for i, listing := range listings[1:] {
		tracks = append(tracks, &domain.Track{
			Title:       previous.Title,
			TrackNumber: i + 1,
			StartTime:   previous.StartTime,
			EndTime:     listing.StartTime,
		})
		previous = listing
	}

	return append(tracks, &domain.Track{
		Title:       previous.Title,
		TrackNumber: len(listings),
		StartTime:   previous.StartTime,
	})
}
