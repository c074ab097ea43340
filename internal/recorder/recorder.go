package recorder

import "time"

// Sample is one fetched reading, kept whether or not the JSON store wrote it.
type Sample struct {
	FetchedAt       time.Time
	Period          string
	Lighting        float64
	AirConditioning float64
	Stored          bool // false when suppressed as a consecutive duplicate
	Warning         bool
}

// Recorder persists raw fetch history for analysis.
type Recorder interface {
	RecordSample(s *Sample) error
	Close() error
}
