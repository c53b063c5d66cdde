package model

import "train_station/geo"

type Route struct {
	DTO
	SourceID      uint    `gorm:"not null;index" json:"source"`
	Source        Station `gorm:"foreignKey:SourceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	DestinationID uint    `gorm:"not null;index" json:"destination"`
	Destination   Station `gorm:"foreignKey:DestinationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type Routes []Route

type RouteInput struct {
	Source      *uint `json:"source" validate:"required"`
	Destination *uint `json:"destination" validate:"required"`
}

type FilterRoute struct {
	Pagination
	Source      string `query:"source"`
	Destination string `query:"destination"`
}

// Distance is the geodesic length of the route in kilometers. Source and
// Destination must be loaded.
func (r Route) Distance() float64 {
	return geo.Distance(
		geo.Point{Latitude: r.Source.Latitude, Longitude: r.Source.Longitude},
		geo.Point{Latitude: r.Destination.Latitude, Longitude: r.Destination.Longitude},
	)
}

func (r Route) String() string {
	return r.Source.Name + " - " + r.Destination.Name
}

type RouteList struct {
	ID          uint    `json:"id"`
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Distance    float64 `json:"distance"`
}

type RouteDetail struct {
	ID          uint    `json:"id"`
	Source      Station `json:"source"`
	Destination Station `json:"destination"`
	Distance    float64 `json:"distance"`
}

type RouteWrite struct {
	ID          uint    `json:"id"`
	Source      uint    `json:"source"`
	Destination uint    `json:"destination"`
	Distance    float64 `json:"distance"`
}

func (r Route) ListShape() RouteList {
	return RouteList{ID: r.ID, Source: r.Source.Name, Destination: r.Destination.Name, Distance: r.Distance()}
}

func (r Route) DetailShape() RouteDetail {
	return RouteDetail{ID: r.ID, Source: r.Source, Destination: r.Destination, Distance: r.Distance()}
}

func (r Route) WriteShape() RouteWrite {
	return RouteWrite{ID: r.ID, Source: r.SourceID, Destination: r.DestinationID, Distance: r.Distance()}
}
