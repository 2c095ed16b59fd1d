package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackHasEndTime(t *testing.T) {
	bounded := &Track{Title: "Intro", TrackNumber: 1, StartTime: "0:00", EndTime: "37:05"}
	last := &Track{Title: "Drops", TrackNumber: 3, StartTime: "42:09"}

	assert.True(t, bounded.HasEndTime())
	assert.False(t, last.HasEndTime())
}

func TestTrackJSONOmitsMissingEndTime(t *testing.T) {
	track := &Track{Title: "Drops", TrackNumber: 3, StartTime: "42:09"}

	data, err := json.Marshal(track)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"title":"Drops","track_number":3,"start_time":"42:09"}`, string(data))
}
