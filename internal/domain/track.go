package domain

// Listing is one parsed line of a track listing, before numbering.
type Listing struct {
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
}

// Track represents an individual output track cut from the source recording.
type Track struct {
	Title       string `json:"title"`
	TrackNumber int    `json:"track_number"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time,omitempty"`
}

// HasEndTime reports whether the track is bounded. The last track of a
// listing has no end time and runs to the end of the input.
func (t *Track) HasEndTime() bool {
	return t.EndTime != ""
}

// Tracklist represents the ordered tracks read from one listing file.
type Tracklist struct {
	Name   string   `json:"name"`
	Tracks []*Track `json:"tracks"`
}
