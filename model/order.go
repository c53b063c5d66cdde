package model

import "time"

type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UserID    uint      `gorm:"not null;index" json:"user"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type Orders []Order

// OrderInput creates an order, optionally with its tickets in the same transaction.
// User and CreatedAt are honoured for administrators only.
type OrderInput struct {
	CreatedAt *time.Time         `json:"created_at"`
	User      *uint              `json:"user"`
	Tickets   []OrderTicketInput `json:"tickets" validate:"omitempty,dive"`
}

type OrderTicketInput struct {
	Cargo   *int  `json:"cargo" validate:"required,gte=1"`
	Seat    *int  `json:"seat" validate:"required,gte=1"`
	Journey *uint `json:"journey" validate:"required"`
}

type OrderList struct {
	ID           uint      `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	User         string    `json:"user"`
	TicketsCount int       `json:"tickets_count"`
}

type OrderTicket struct {
	ID      uint         `json:"id"`
	Cargo   int          `json:"cargo"`
	Seat    int          `json:"seat"`
	Journey JourneyBrief `json:"journey"`
}

type OrderDetail struct {
	ID        uint          `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	User      User          `json:"user"`
	Tickets   []OrderTicket `json:"tickets"`
}

type OrderWrite struct {
	ID        uint          `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	User      uint          `json:"user"`
	Tickets   []TicketWrite `json:"tickets,omitempty"`
}

type OrderSummary struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	User      string    `json:"user"`
}

// ListShape needs User loaded.
func (o Order) ListShape(ticketsCount int64) OrderList {
	return OrderList{ID: o.ID, CreatedAt: o.CreatedAt, User: o.User.Email, TicketsCount: int(ticketsCount)}
}

// DetailShape needs User loaded and each ticket's Journey with Route stations and Train.
func (o Order) DetailShape(tickets []Ticket) OrderDetail {
	items := make([]OrderTicket, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, OrderTicket{ID: t.ID, Cargo: t.Cargo, Seat: t.Seat, Journey: t.Journey.BriefShape()})
	}
	return OrderDetail{ID: o.ID, CreatedAt: o.CreatedAt, User: o.User, Tickets: items}
}

func (o Order) WriteShape(tickets []Ticket) OrderWrite {
	var items []TicketWrite
	for _, t := range tickets {
		items = append(items, t.WriteShape())
	}
	return OrderWrite{ID: o.ID, CreatedAt: o.CreatedAt, User: o.UserID, Tickets: items}
}

func (o Order) SummaryShape() OrderSummary {
	return OrderSummary{ID: o.ID, CreatedAt: o.CreatedAt, User: o.User.Email}
}
