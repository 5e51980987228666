package fuse

import (
	"strconv"
	"time"

	"github.com/mattflanzer/gpxfixer/internal/geo"
	"github.com/mattflanzer/gpxfixer/internal/gpx"
)

// Track owns an ordered point sequence plus the scalars derived from it
// during normalization. Points are never shared between tracks.
type Track struct {
	Name   string
	Points []Point

	// Derived once by NewTrack, immutable afterwards.
	TotalDistance      float64       // meters
	TotalDuration      time.Duration // last timestamp - first timestamp
	StationaryDuration time.Duration // intervals below the minimum motion rate
}

// NewTrack normalizes an ordered point sequence: per-point distance
// accumulation, elapsed time, position and time fractions, and stationary
// time detection.
func NewTrack(name string, points []Point, cfg Config) (*Track, error) {
	if len(points) < 2 {
		return nil, &InsufficientPointsError{Track: name, Points: len(points)}
	}

	t := &Track{Name: name, Points: points}
	origin := t.Points[0]

	// First pass: inter-point distances and elapsed times. The first point
	// keeps its zero values.
	for i := 1; i < len(t.Points); i++ {
		p := &t.Points[i]
		prev := t.Points[i-1]

		p.Distance = geo.Distance(prev.Lat, prev.Lon, p.Lat, p.Lon)
		p.AccumulatedDistance = prev.AccumulatedDistance + p.Distance
		p.Elapsed = p.Time.Sub(origin.Time)
		p.SinceLast = p.Time.Sub(prev.Time)
	}

	last := t.Points[len(t.Points)-1]
	t.TotalDistance = last.AccumulatedDistance
	t.TotalDuration = last.Elapsed

	if t.TotalDuration <= 0 {
		return nil, &DegenerateTrackError{Track: name, Reason: "total duration is zero"}
	}
	if t.TotalDistance == 0 {
		return nil, &DegenerateTrackError{Track: name, Reason: "total distance is zero"}
	}

	// Second pass: fractions need the totals.
	for i := range t.Points {
		p := &t.Points[i]
		p.PositionFraction = p.AccumulatedDistance / t.TotalDistance
		p.TimeFraction = p.Elapsed.Seconds() / t.TotalDuration.Seconds()
	}

	t.StationaryDuration = stationaryTime(t.Points, cfg.MinMotionRate)

	return t, nil
}

// MovingDuration returns the track's effective moving time: total elapsed
// time minus time classified as stationary.
func (t *Track) MovingDuration() time.Duration {
	return t.TotalDuration - t.StationaryDuration
}

// stationaryTime sums the point-to-point intervals whose implied speed
// falls below minRate. A zero-duration interval has rate 0 and therefore
// never counts as moving.
func stationaryTime(points []Point, minRate float64) time.Duration {
	var total time.Duration

	for i := 1; i < len(points); i++ {
		p := points[i]

		rate := 0.0
		if p.SinceLast > 0 {
			rate = p.Distance / p.SinceLast.Seconds()
		}

		if rate < minRate {
			total += p.SinceLast
		}
	}

	return total
}

// PointsFromGPX validates parsed GPX points and converts them for fusion.
// Required fields (time, elevation) must be present and channel values must
// be numeric; nothing is defaulted silently.
func PointsFromGPX(track string, pts []gpx.Point) ([]Point, error) {
	out := make([]Point, len(pts))

	for i, p := range pts {
		if p.Time.IsZero() {
			return nil, &MalformedPointError{Track: track, Index: i, Field: "time"}
		}
		if p.Elevation == nil {
			return nil, &MalformedPointError{Track: track, Index: i, Field: "ele"}
		}

		raw := gpx.Channels(p.Extensions)
		channels := make([]Channel, 0, len(raw))
		for _, c := range raw {
			value, err := strconv.ParseFloat(c.Value, 64)
			if err != nil {
				return nil, &MalformedPointError{Track: track, Index: i, Field: c.Name, Cause: err}
			}
			channels = append(channels, Channel{Name: c.Name, Value: value})
		}

		out[i] = Point{
			Lat:       p.Lat,
			Lon:       p.Lon,
			Elevation: *p.Elevation,
			Time:      p.Time.Time,
			Channels:  channels,
		}
	}

	return out, nil
}
