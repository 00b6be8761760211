package office

// DefaultRadiusMeters is used when no configured fallback is supplied.
const DefaultRadiusMeters = 200

type Office struct {
	ID                  string
	Name                string
	Code                string
	Latitude            *float64
	Longitude           *float64
	AllowedRadiusMeters *int
	IsActive            bool
}

// Radius returns the geofence radius in meters, or fallback when unset.
func (o Office) Radius(fallback float64) float64 {
	if o.AllowedRadiusMeters == nil || *o.AllowedRadiusMeters <= 0 {
		return fallback
	}
	return float64(*o.AllowedRadiusMeters)
}

// HasCoordinates reports whether the office location is known.
func (o Office) HasCoordinates() bool {
	return o.Latitude != nil && o.Longitude != nil
}
