package models

import (
	"encoding/json"
	"time"
)

// AnalysisRecord is a stored emotion analysis event.
type AnalysisRecord struct {
	ID          int64           `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	Emotion     string          `json:"emotion"`
	Confidence  float64         `json:"confidence"`
	Predictions json.RawMessage `json:"predictions"`
	LatencyMs   float64         `json:"latencyMs"`
	SourceName  string          `json:"sourceName,omitempty"`
	Variant     string          `json:"variant,omitempty"`
}
