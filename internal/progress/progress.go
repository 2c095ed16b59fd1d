package progress

import (
	"sync"
	"time"
)

// Stage represents the current stage of a run
type Stage string

const (
	StageInitializing Stage = "initializing"
	StageImporting    Stage = "importing"
	StageSplitting    Stage = "splitting"
	StageComplete     Stage = "complete"
	StageError        Stage = "error"
)

// Event represents a progress event
type Event struct {
	Stage        Stage         `json:"stage"`
	Message      string        `json:"message"`
	Timestamp    time.Time     `json:"timestamp"`
	TrackDetails *TrackDetails `json:"trackDetails,omitempty"`
	Error        string        `json:"error,omitempty"`
}

// TrackDetails describes the track an event refers to
type TrackDetails struct {
	TrackNumber     int    `json:"trackNumber"`
	TotalTracks     int    `json:"totalTracks"`
	CurrentTrack    string `json:"currentTrack"`
	ProcessedTracks int    `json:"processedTracks"`
}

// Tracker fans progress events out to listeners
type Tracker struct {
	mu           sync.RWMutex
	stage        Stage
	message      string
	trackDetails *TrackDetails
	err          error
	listeners    []func(Event)
}

func NewTracker() *Tracker {
	return &Tracker{
		stage: StageInitializing,
	}
}

// AddListener adds a new progress event listener
func (pt *Tracker) AddListener(listener func(Event)) {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	pt.listeners = append(pt.listeners, listener)
}

// UpdateStage moves to a new stage and notifies all listeners
func (pt *Tracker) UpdateStage(stage Stage, message string) {
	pt.mu.Lock()
	pt.stage = stage
	pt.message = message
	pt.mu.Unlock()

	pt.notifyListeners(Event{
		Stage:     stage,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// UpdateTrackProgress records that a track has been handled
func (pt *Tracker) UpdateTrackProgress(trackNumber, totalTracks, processedTracks int, currentTrack string) {
	details := &TrackDetails{
		TrackNumber:     trackNumber,
		TotalTracks:     totalTracks,
		CurrentTrack:    currentTrack,
		ProcessedTracks: processedTracks,
	}

	pt.mu.Lock()
	pt.trackDetails = details
	stage, message := pt.stage, pt.message
	pt.mu.Unlock()

	pt.notifyListeners(Event{
		Stage:        stage,
		Message:      message,
		Timestamp:    time.Now(),
		TrackDetails: details,
	})
}

// SetError sets an error state and notifies all listeners
func (pt *Tracker) SetError(err error) {
	pt.mu.Lock()
	pt.stage = StageError
	pt.err = err
	pt.mu.Unlock()

	pt.notifyListeners(Event{
		Stage:     StageError,
		Message:   err.Error(),
		Timestamp: time.Now(),
		Error:     err.Error(),
	})
}

func (pt *Tracker) notifyListeners(event Event) {
	pt.mu.RLock()
	listeners := make([]func(Event), len(pt.listeners))
	copy(listeners, pt.listeners)
	pt.mu.RUnlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// CurrentState returns the current progress state
func (pt *Tracker) CurrentState() Event {
	pt.mu.RLock()
	defer pt.mu.RUnlock()

	event := Event{
		Stage:        pt.stage,
		Message:      pt.message,
		Timestamp:    time.Now(),
		TrackDetails: pt.trackDetails,
	}
	if pt.err != nil {
		event.Error = pt.err.Error()
	}
	return event
}
