package model

import "time"

type Journey struct {
	DTO
	RouteID       uint      `gorm:"not null;index" json:"route"`
	Route         Route     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	TrainID       uint      `gorm:"not null;index" json:"train"`
	Train         Train     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	DepartureTime time.Time `gorm:"not null;index" json:"departure_time"`
	ArrivalTime   time.Time `gorm:"not null" json:"arrival_time"`
}

type Journeys []Journey

type JourneyInput struct {
	Route         *uint      `json:"route" validate:"required"`
	Train         *uint      `json:"train" validate:"required"`
	DepartureTime *time.Time `json:"departure_time" validate:"required"`
	ArrivalTime   *time.Time `json:"arrival_time" validate:"required"`
}

type FilterJourney struct {
	Pagination
	Route       uint   `query:"route"`
	Train       uint   `query:"train"`
	Date        string `query:"date"`
	Source      string `query:"source"`
	Destination string `query:"destination"`
}

// SeatRef identifies one sold place on a journey.
type SeatRef struct {
	Cargo int `json:"cargo"`
	Seat  int `json:"seat"`
}

type JourneySeats struct {
	Journey   uint      `json:"journey"`
	Capacity  int       `json:"capacity"`
	Available int       `json:"available"`
	Taken     []SeatRef `json:"taken"`
}

type JourneyBrief struct {
	ID            uint      `json:"id"`
	Route         string    `json:"route"`
	Train         string    `json:"train"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

type JourneyList struct {
	JourneyBrief
	TicketsAvailable int `json:"tickets_available"`
}

type JourneyDetail struct {
	ID            uint        `json:"id"`
	Route         RouteDetail `json:"route"`
	Train         TrainDetail `json:"train"`
	DepartureTime time.Time   `json:"departure_time"`
	ArrivalTime   time.Time   `json:"arrival_time"`
}

type JourneyWrite struct {
	ID            uint      `json:"id"`
	Route         uint      `json:"route"`
	Train         uint      `json:"train"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

func (j Journey) BriefShape() JourneyBrief {
	return JourneyBrief{
		ID:            j.ID,
		Route:         j.Route.String(),
		Train:         j.Train.Name,
		DepartureTime: j.DepartureTime,
		ArrivalTime:   j.ArrivalTime,
	}
}

// ListShape needs Route (with stations) and Train loaded; sold is the number of tickets on the journey.
func (j Journey) ListShape(sold int64) JourneyList {
	available := j.Train.Capacity() - int(sold)
	if available < 0 {
		available = 0
	}
	return JourneyList{JourneyBrief: j.BriefShape(), TicketsAvailable: available}
}

func (j Journey) DetailShape() JourneyDetail {
	return JourneyDetail{
		ID:            j.ID,
		Route:         j.Route.DetailShape(),
		Train:         j.Train.DetailShape(),
		DepartureTime: j.DepartureTime,
		ArrivalTime:   j.ArrivalTime,
	}
}

func (j Journey) WriteShape() JourneyWrite {
	return JourneyWrite{
		ID:            j.ID,
		Route:         j.RouteID,
		Train:         j.TrainID,
		DepartureTime: j.DepartureTime,
		ArrivalTime:   j.ArrivalTime,
	}
}
