package geo

import (
	"math"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
)

const earthRadiusMeters = 6371000

// Distance returns the great-circle distance in meters between two coordinates.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Inside reports whether the device is within the office radius, using
// defaultRadius for offices without one. Missing device or office coordinates
// are never inside and yield a nil distance.
func Inside(deviceLat, deviceLon *float64, o office.Office, defaultRadius float64) (bool, *float64) {
	if deviceLat == nil || deviceLon == nil || !o.HasCoordinates() {
		return false, nil
	}

	d := Distance(*deviceLat, *deviceLon, *o.Latitude, *o.Longitude)
	return d <= o.Radius(defaultRadius), &d
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
