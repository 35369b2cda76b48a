package domain

import "time"

// GeoPoint follows the GeoJSON point layout: coordinates are [lng, lat].
type GeoPoint struct {
	Type        string    `json:"type" dynamodbav:"type"`
	Coordinates []float64 `json:"coordinates" dynamodbav:"coordinates"`
}

func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

func (p GeoPoint) Longitude() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

func (p GeoPoint) Latitude() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

type Job struct {
	JobID        string    `json:"id" dynamodbav:"job_id"`
	Image        string    `json:"image" dynamodbav:"image"`
	ImageKey     string    `json:"-" dynamodbav:"image_key"`
	CompanyName  string    `json:"companyName" dynamodbav:"company_name"`
	Role         string    `json:"role" dynamodbav:"role"`
	LocationName string    `json:"locationName" dynamodbav:"location_name"`
	Location     GeoPoint  `json:"location" dynamodbav:"location"`
	CreatedAt    time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

type JobInput struct {
	CompanyName  string   `validate:"required"`
	Role         string   `validate:"required"`
	LocationName string   `validate:"required"`
	Longitude    *float64 `validate:"required,gte=-180,lte=180"`
	Latitude     *float64 `validate:"required,gte=-90,lte=90"`
}

// JobUpdate carries optional fields; nil means unchanged.
type JobUpdate struct {
	CompanyName  *string
	Role         *string
	LocationName *string
	Longitude    *float64 `validate:"omitempty,gte=-180,lte=180"`
	Latitude     *float64 `validate:"omitempty,gte=-90,lte=90"`
}
