package office

type OfficeResponse struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Code                string   `json:"code"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
	AllowedRadiusMeters float64  `json:"allowed_radius_meters"`
}

func ToResponse(o Office, defaultRadius float64) OfficeResponse {
	return OfficeResponse{
		ID:                  o.ID,
		Name:                o.Name,
		Code:                o.Code,
		Latitude:            o.Latitude,
		Longitude:           o.Longitude,
		AllowedRadiusMeters: o.Radius(defaultRadius),
	}
}
