package repository

import (
	"context"
	"errors"
	"fmt"

	"train_station/apperror"
	"train_station/constants"
	"train_station/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func preloadTicket(q *gorm.DB) *gorm.DB {
	return preloadTicketJourney(q).Preload("Order.User")
}

func preloadTicketJourney(q *gorm.DB) *gorm.DB {
	return q.Preload("Journey.Route.Source").
		Preload("Journey.Route.Destination").
		Preload("Journey.Train.TrainType")
}

// scopeTickets restricts non-admin scopes to tickets of their own orders.
func scopeTickets(db *gorm.DB, scope model.Scope) *gorm.DB {
	q := db.Model(&model.Ticket{})
	if !scope.IsAdmin {
		q = q.Where("order_id IN (?)", db.Model(&model.Order{}).Select("id").Where("user_id = ?", scope.UserID))
	}
	return q
}

func (s *Store) ListTickets(ctx context.Context, scope model.Scope, filter model.FilterTicket) ([]model.Ticket, int64, error) {
	base := scopeTickets(s.db.WithContext(ctx), scope)
	if filter.Journey != 0 {
		base = base.Where("journey_id = ?", filter.Journey)
	}
	if filter.Order != 0 {
		base = base.Where("order_id = ?", filter.Order)
	}
	var tickets []model.Ticket
	total, err := listPage(base, filter.Pagination, func(q *gorm.DB) *gorm.DB {
		return preloadTicketJourney(q).Order("id")
	}, &tickets)
	return tickets, total, err
}

func (s *Store) GetTicket(ctx context.Context, scope model.Scope, id uint) (*model.Ticket, error) {
	var ticket model.Ticket
	if err := preloadTicket(scopeTickets(s.db.WithContext(ctx), scope)).First(&ticket, id).Error; err != nil {
		return nil, apperror.FromLookup(err)
	}
	return &ticket, nil
}

// CreateTicket sells one seat. The result is either the stored ticket or a
// *apperror.ValidationError naming the offending field.
func (s *Store) CreateTicket(ctx context.Context, scope model.Scope, in *model.TicketInput) (*model.Ticket, error) {
	ticket := model.Ticket{
		Cargo:     *in.Cargo,
		Seat:      *in.Seat,
		JourneyID: *in.Journey,
		OrderID:   *in.Order,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireVisibleOrder(tx, scope, ticket.OrderID); err != nil {
			return err
		}
		return placeTicket(tx, &ticket, "")
	})
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *Store) UpdateTicket(ctx context.Context, scope model.Scope, id uint, in *model.TicketInput) (*model.Ticket, error) {
	var ticket model.Ticket
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := scopeTickets(tx, scope).First(&ticket, id).Error; err != nil {
			return apperror.FromLookup(err)
		}
		if in.Cargo != nil {
			ticket.Cargo = *in.Cargo
		}
		if in.Seat != nil {
			ticket.Seat = *in.Seat
		}
		if in.Journey != nil {
			ticket.JourneyID = *in.Journey
		}
		if in.Order != nil && *in.Order != ticket.OrderID {
			if err := requireVisibleOrder(tx, scope, *in.Order); err != nil {
				return err
			}
			ticket.OrderID = *in.Order
		}
		return placeTicket(tx, &ticket, "")
	})
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *Store) DeleteTicket(ctx context.Context, scope model.Scope, id uint) (*model.Ticket, error) {
	var ticket model.Ticket
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := scopeTickets(tx, scope).First(&ticket, id).Error; err != nil {
			return apperror.FromLookup(err)
		}
		return tx.Delete(&model.Ticket{}, ticket.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func requireVisibleOrder(tx *gorm.DB, scope model.Scope, orderID uint) error {
	var count int64
	if err := scopeOrders(tx, scope).Where("id = ?", orderID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperror.Field("order", constants.InvalidPk(orderID))
	}
	return nil
}

// placeTicket guards the (journey, seat) invariant and writes the ticket. It
// must run inside a transaction: the journey row is locked so concurrent
// sales for the same journey queue behind each other, and the unique index
// catches anything that still slips through. prefix namespaces field errors
// for nested payloads.
func placeTicket(tx *gorm.DB, ticket *model.Ticket, prefix string) error {
	var journey model.Journey
	if err := lockForUpdate(tx).First(&journey, ticket.JourneyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Field(prefix+"journey", constants.InvalidPk(ticket.JourneyID))
		}
		return err
	}
	var train model.Train
	if err := tx.First(&train, journey.TrainID).Error; err != nil {
		return err
	}

	errs := &apperror.ValidationError{}
	if ticket.Cargo < 1 || ticket.Cargo > train.CargoNum {
		errs.Add(prefix+"cargo", fmt.Sprintf("cargo must be in available range: (1, cargo_num): (1, %d)", train.CargoNum))
	}
	if ticket.Seat < 1 || ticket.Seat > train.PlacesInCargo {
		errs.Add(prefix+"seat", fmt.Sprintf("seat must be in available range: (1, places_in_cargo): (1, %d)", train.PlacesInCargo))
	}
	if !errs.Empty() {
		return errs
	}

	var taken int64
	q := tx.Model(&model.Ticket{}).Where("journey_id = ? AND seat = ?", ticket.JourneyID, ticket.Seat)
	if ticket.ID != 0 {
		q = q.Where("id <> ?", ticket.ID)
	}
	if err := q.Count(&taken).Error; err != nil {
		return err
	}
	if taken > 0 {
		return apperror.Field(prefix+"seat", constants.SEAT_TAKEN)
	}
	return writeTicket(tx, ticket, prefix)
}

// writeTicket persists the ticket and maps a unique index violation on
// (journey_id, seat) to the same field error the fast path reports.
func writeTicket(tx *gorm.DB, ticket *model.Ticket, prefix string) error {
	var err error
	if ticket.ID == 0 {
		err = tx.Omit(clause.Associations).Create(ticket).Error
	} else {
		err = tx.Omit(clause.Associations).Save(ticket).Error
	}
	if apperror.IsUniqueViolation(err) {
		return apperror.Field(prefix+"seat", constants.SEAT_TAKEN)
	}
	return err
}
