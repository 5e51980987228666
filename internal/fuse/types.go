package fuse

import (
	"time"
)

// Channel is one raw sensor sample attached to a point, e.g. heart rate or
// cadence. Order follows document order so synthesized output keeps the
// source's channel ordering.
type Channel struct {
	Name  string
	Value float64
}

// SynthChannel is a synthesized channel value, already rounded and
// formatted for serialization.
type SynthChannel struct {
	Name  string
	Value string
}

// Point is one track sample. Identity fields come from the parsed file;
// the computed fields are filled during normalization and owned by the
// Track that contains the point.
type Point struct {
	Lat       float64
	Lon       float64
	Elevation float64
	Time      time.Time
	Channels  []Channel // raw sensor values; empty for reference tracks

	// Computed by NewTrack.
	Distance            float64       // meters from previous point
	AccumulatedDistance float64       // meters from track origin
	PositionFraction    float64       // accumulated / total distance, in [0,1]
	Elapsed             time.Duration // since track origin
	TimeFraction        float64       // elapsed / total duration, in [0,1]
	SinceLast           time.Duration // since previous point

	// Synthesized is set by Fuse on reference points.
	Synthesized []SynthChannel
}

// Config holds fusion parameters
type Config struct {
	// MinMotionRate is the speed (m/s) below which a point-to-point
	// interval counts as stationary time.
	MinMotionRate float64 `yaml:"min_motion_rate"`

	// ChannelPrefix is prepended to synthesized channel names that do not
	// already carry it, matching the vendor namespace convention.
	ChannelPrefix string `yaml:"channel_prefix"`

	// TemperatureChannel names the channel rounded to one decimal place;
	// every other channel is rounded to the nearest integer.
	TemperatureChannel string `yaml:"temperature_channel"`
}

// DefaultConfig returns production-tested configuration
func DefaultConfig() Config {
	return Config{
		MinMotionRate:      1.5,     // below ~5.4 km/h the device is considered stopped
		ChannelPrefix:      "ns3:",  // Garmin TrackPointExtension convention
		TemperatureChannel: "atemp", // ambient temperature keeps one decimal
	}
}

// Stats reports what happened during fusion so callers can surface it to users.
type Stats struct {
	// Input
	SourcePoints    int `json:"source_points"`
	ReferencePoints int `json:"reference_points"`

	// Source motion profile
	SourceDistance     float64 `json:"source_distance_km"`
	ReferenceDistance  float64 `json:"reference_distance_km"`
	TotalDuration      float64 `json:"total_duration_s"`
	StationaryDuration float64 `json:"stationary_duration_s"`
	MovingDuration     float64 `json:"moving_duration_s"`

	// Regression
	Channels []string `json:"channels"`

	// Performance
	ProcessingTime time.Duration `json:"processing_time_ms"`
}

// Result contains the fused track and fusion statistics.
type Result struct {
	Track *Track
	Stats Stats
}
