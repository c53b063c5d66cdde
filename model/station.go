package model

type Station struct {
	DTO
	Name      string  `gorm:"size:255;not null" json:"name"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
}

type Stations []Station

type StationInput struct {
	Name      *string  `json:"name" validate:"required,min=1,max=255"`
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}
