// Package geo provides great-circle distance between GPS coordinates.
package geo

import "math"

// earthRadius is the mean Earth radius in meters.
const earthRadius = 6371000

// Distance returns the great-circle distance in meters between two
// coordinates given in degrees, using the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	// Clamp floating-point overshoot so Sqrt stays in domain near
	// antipodal and coincident points.
	if a > 1 {
		a = 1
	} else if a < 0 {
		a = 0
	}

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
