package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Hand string

const (
	HandRight Hand = "right"
	HandLeft  Hand = "left"
)

// UserContext is optional demographic framing supplied with an analysis
// request. Values are interpolated into the prompt as-is; out-of-range values
// are not rejected at this layer.
type UserContext struct {
	Gender       Gender `json:"gender"`
	Age          int    `json:"age"`
	DominantHand Hand   `json:"dominantHand"`
}

// AnalysisRequest is the transient per-call input to the reading pipeline.
// It has no identity beyond the request lifetime.
type AnalysisRequest struct {
	ImageData         []byte
	MimeType          string
	UserContext       *UserContext
	HasSecondaryImage bool
}

// Reading is the fully-defaulted structured result produced by the response
// normalizer. Keys the model omitted carry documented defaults; keys the
// model produced beyond the schema pass through untouched.
type Reading map[string]any

// ReadingRecord is a Reading persisted into history, at which point it gains
// a generated identifier and a timestamp.
type ReadingRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Reading   Reading   `json:"reading"`
}
