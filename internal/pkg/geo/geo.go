package geo

import "math"

const earthRadiusMeters = 6371000 // mean Earth radius

// Haversine returns the great-circle distance between two coordinates in
// meters. The function is symmetric and returns 0 for identical points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Point is a named center a distance can be measured against.
type Point struct {
	Latitude  float64
	Longitude float64
}

// WithinAnyZone reports whether the point lies within radiusMeters of at
// least one center. An empty center set yields false; callers decide
// whether the check applies at all before asking.
func WithinAnyZone(lat, lon float64, centers []Point, radiusMeters float64) bool {
	for _, c := range centers {
		if Haversine(lat, lon, c.Latitude, c.Longitude) <= radiusMeters {
			return true
		}
	}
	return false
}
