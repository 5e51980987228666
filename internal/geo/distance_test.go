package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceCoincidentPoints(t *testing.T) {
	assert.Zero(t, Distance(46.0, 7.0, 46.0, 7.0))
	assert.Zero(t, Distance(-33.8688, 151.2093, -33.8688, 151.2093))
}

func TestDistanceSymmetric(t *testing.T) {
	d1 := Distance(46.0, 7.0, 47.5, 8.25)
	d2 := Distance(47.5, 8.25, 46.0, 7.0)

	assert.Equal(t, d1, d2)
}

func TestDistanceKnownSeparation(t *testing.T) {
	// One degree of latitude along a meridian is R * pi/180.
	want := 6371000 * math.Pi / 180

	got := Distance(0, 0, 1, 0)

	assert.InDelta(t, want, got, 0.01)
}

func TestDistanceAntipodal(t *testing.T) {
	// Half the Earth's circumference; the clamp keeps Sqrt in domain when
	// the haversine term overshoots 1.
	want := math.Pi * 6371000

	got := Distance(0, 0, 0, 180)

	assert.False(t, math.IsNaN(got))
	assert.InDelta(t, want, got, 1)
}

func TestDistanceShortSeparation(t *testing.T) {
	// ~11 meters of latitude.
	got := Distance(46.0, 7.0, 46.0001, 7.0)

	assert.InDelta(t, 11.1, got, 0.1)
}
