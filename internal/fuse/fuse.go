// Package fuse combines two recordings of the same activity: a source
// track with trustworthy sensor channels but unreliable geometry, and a
// reference track with accurate geometry but no sensors. The fused output
// carries the reference geometry, sensor values fitted from the source,
// and timestamps paced by the source's moving time.
package fuse

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Fuse runs the fusion pipeline over two normalized tracks and returns the
// augmented reference track. The source track is never modified. Any stage
// failure aborts the whole fusion with no partial output.
func Fuse(source, reference *Track, cfg Config) (*Result, error) {
	startTime := time.Now()

	fits, order, err := Regress(source)
	if err != nil {
		return nil, err
	}

	Synthesize(reference, fits, order, cfg)
	ReconstructTime(reference, source)

	channels := make([]string, len(order))
	copy(channels, order)

	stats := Stats{
		SourcePoints:       len(source.Points),
		ReferencePoints:    len(reference.Points),
		SourceDistance:     source.TotalDistance / 1000,
		ReferenceDistance:  reference.TotalDistance / 1000,
		TotalDuration:      source.TotalDuration.Seconds(),
		StationaryDuration: source.StationaryDuration.Seconds(),
		MovingDuration:     source.MovingDuration().Seconds(),
		Channels:           channels,
		ProcessingTime:     time.Since(startTime),
	}

	return &Result{Track: reference, Stats: stats}, nil
}

// Regress fits one polynomial per sensor channel over the source's
// (position fraction, value) samples. Channels need not be present on
// every point; order reports channel names in first-seen document order.
func Regress(t *Track) (fits map[string]Polynomial, order []string, err error) {
	type sampleSet struct {
		xs, ys []float64
	}

	sets := make(map[string]*sampleSet)
	for _, p := range t.Points {
		for _, c := range p.Channels {
			s, ok := sets[c.Name]
			if !ok {
				s = &sampleSet{}
				sets[c.Name] = s
				order = append(order, c.Name)
			}
			s.xs = append(s.xs, p.PositionFraction)
			s.ys = append(s.ys, c.Value)
		}
	}

	fits = make(map[string]Polynomial, len(sets))
	for _, name := range order {
		s := sets[name]
		if len(s.xs) < fitDegree+1 {
			return nil, nil, &InsufficientDataError{Track: t.Name, Channel: name, Samples: len(s.xs)}
		}

		fit, fitErr := FitPolynomial(s.xs, s.ys, fitDegree)
		if fitErr != nil {
			return nil, nil, fitErr
		}
		fits[name] = fit
	}

	return fits, order, nil
}

// Synthesize attaches channel values to every reference point by evaluating
// the source's fitted curves at the point's position fraction. The
// temperature channel keeps one decimal; all other channels round to the
// nearest integer. Unprefixed channel names gain the configured prefix.
func Synthesize(reference *Track, fits map[string]Polynomial, order []string, cfg Config) {
	for i := range reference.Points {
		p := &reference.Points[i]

		synth := make([]SynthChannel, 0, len(order))
		for _, name := range order {
			value := fits[name].Eval(p.PositionFraction)

			qualified := name
			if !strings.HasPrefix(qualified, cfg.ChannelPrefix) {
				qualified = cfg.ChannelPrefix + qualified
			}

			var text string
			if strings.TrimPrefix(qualified, cfg.ChannelPrefix) == cfg.TemperatureChannel {
				text = strconv.FormatFloat(math.Round(value*10)/10, 'f', 1, 64)
			} else {
				text = strconv.Itoa(int(math.Round(value)))
			}

			synth = append(synth, SynthChannel{Name: qualified, Value: text})
		}

		p.Synthesized = synth
	}
}

// ReconstructTime rewrites the reference track's timestamps so its geometry
// is traversed in the source's effective moving duration: each point lands
// at origin + moving * position fraction. Position fractions are
// non-decreasing, so the rewritten timestamps are too.
func ReconstructTime(reference, source *Track) {
	moving := source.MovingDuration()
	origin := source.Points[0].Time

	for i := range reference.Points {
		p := &reference.Points[i]
		p.Elapsed = time.Duration(float64(moving) * p.PositionFraction)
		p.Time = origin.Add(p.Elapsed)
	}
}
