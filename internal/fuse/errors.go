package fuse

import "fmt"

// InsufficientPointsError reports a track too short to normalize.
type InsufficientPointsError struct {
	Track  string
	Points int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("track %q has %d point(s), need at least 2", e.Track, e.Points)
}

// DegenerateTrackError reports a track whose totals make normalization a
// division by zero.
type DegenerateTrackError struct {
	Track  string
	Reason string
}

func (e *DegenerateTrackError) Error() string {
	return fmt.Sprintf("track %q cannot be normalized: %s", e.Track, e.Reason)
}

// InsufficientDataError reports a sensor channel with too few samples to
// determine a unique fit.
type InsufficientDataError struct {
	Track   string
	Channel string
	Samples int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("track %q channel %q has %d sample(s), need at least %d for a degree-%d fit",
		e.Track, e.Channel, e.Samples, fitDegree+1, fitDegree)
}

// MalformedPointError reports a point missing a required field or carrying
// a non-numeric value.
type MalformedPointError struct {
	Track string
	Index int
	Field string
	Cause error
}

func (e *MalformedPointError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("track %q point %d: invalid %s: %v", e.Track, e.Index, e.Field, e.Cause)
	}
	return fmt.Sprintf("track %q point %d: missing %s", e.Track, e.Index, e.Field)
}

func (e *MalformedPointError) Unwrap() error {
	return e.Cause
}
