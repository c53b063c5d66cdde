package model

import "time"

// Ticket is one sold seat. (journey, seat) is unique regardless of cargo.
type Ticket struct {
	DTO
	Cargo     int     `gorm:"not null" json:"cargo"`
	Seat      int     `gorm:"not null;uniqueIndex:idx_ticket_journey_seat,priority:2" json:"seat"`
	JourneyID uint    `gorm:"not null;uniqueIndex:idx_ticket_journey_seat,priority:1" json:"journey"`
	Journey   Journey `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	OrderID   uint    `gorm:"not null;index" json:"order"`
	Order     Order   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type Tickets []Ticket

type TicketInput struct {
	Cargo   *int  `json:"cargo" validate:"required,gte=1"`
	Seat    *int  `json:"seat" validate:"required,gte=1"`
	Journey *uint `json:"journey" validate:"required"`
	Order   *uint `json:"order" validate:"required"`
}

type FilterTicket struct {
	Pagination
	Journey uint `query:"journey"`
	Order   uint `query:"order"`
}

type TicketList struct {
	ID            uint      `json:"id"`
	Cargo         int       `json:"cargo"`
	Seat          int       `json:"seat"`
	Journey       uint      `json:"journey"`
	Order         uint      `json:"order"`
	Route         string    `json:"route"`
	DepartureTime time.Time `json:"departure_time"`
}

type TicketDetail struct {
	ID      uint          `json:"id"`
	Cargo   int           `json:"cargo"`
	Seat    int           `json:"seat"`
	Journey JourneyDetail `json:"journey"`
	Order   OrderSummary  `json:"order"`
}

type TicketWrite struct {
	ID      uint `json:"id"`
	Cargo   int  `json:"cargo"`
	Seat    int  `json:"seat"`
	Journey uint `json:"journey"`
	Order   uint `json:"order"`
}

// ListShape needs Journey with Route stations loaded.
func (t Ticket) ListShape() TicketList {
	return TicketList{
		ID:            t.ID,
		Cargo:         t.Cargo,
		Seat:          t.Seat,
		Journey:       t.JourneyID,
		Order:         t.OrderID,
		Route:         t.Journey.Route.String(),
		DepartureTime: t.Journey.DepartureTime,
	}
}

// DetailShape needs the full journey graph and Order.User loaded.
func (t Ticket) DetailShape() TicketDetail {
	return TicketDetail{
		ID:      t.ID,
		Cargo:   t.Cargo,
		Seat:    t.Seat,
		Journey: t.Journey.DetailShape(),
		Order:   t.Order.SummaryShape(),
	}
}

func (t Ticket) WriteShape() TicketWrite {
	return TicketWrite{ID: t.ID, Cargo: t.Cargo, Seat: t.Seat, Journey: t.JourneyID, Order: t.OrderID}
}
