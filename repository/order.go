package repository

import (
	"context"
	"fmt"
	"time"

	"train_station/apperror"
	"train_station/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// scopeOrders restricts non-admin scopes to their own orders.
func scopeOrders(db *gorm.DB, scope model.Scope) *gorm.DB {
	q := db.Model(&model.Order{})
	if !scope.IsAdmin {
		q = q.Where("user_id = ?", scope.UserID)
	}
	return q
}

func (s *Store) ListOrders(ctx context.Context, scope model.Scope, p model.Pagination) ([]model.Order, map[uint]int64, int64, error) {
	db := s.db.WithContext(ctx)
	var orders []model.Order
	total, err := listPage(scopeOrders(db, scope), p, func(q *gorm.DB) *gorm.DB {
		return q.Preload("User").Order("created_at DESC, id DESC")
	}, &orders)
	if err != nil {
		return nil, nil, 0, err
	}

	counts := make(map[uint]int64, len(orders))
	if len(orders) > 0 {
		ids := make([]uint, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, o.ID)
		}
		var rows []struct {
			OrderID uint
			Total   int64
		}
		if err := db.Model(&model.Ticket{}).
			Select("order_id, COUNT(*) AS total").
			Where("order_id IN ?", ids).
			Group("order_id").
			Scan(&rows).Error; err != nil {
			return nil, nil, 0, err
		}
		for _, r := range rows {
			counts[r.OrderID] = r.Total
		}
	}
	return orders, counts, total, nil
}

// GetOrder returns the order with its tickets. Orders outside the scope are ErrNotFound.
func (s *Store) GetOrder(ctx context.Context, scope model.Scope, id uint) (*model.Order, []model.Ticket, error) {
	db := s.db.WithContext(ctx)
	var order model.Order
	if err := scopeOrders(db, scope).Preload("User").First(&order, id).Error; err != nil {
		return nil, nil, apperror.FromLookup(err)
	}
	var tickets []model.Ticket
	if err := preloadTicketJourney(db).Where("order_id = ?", order.ID).Order("id").Find(&tickets).Error; err != nil {
		return nil, nil, err
	}
	return &order, tickets, nil
}

// CreateOrder stores an order for the requester (or, for administrators, the
// given user) together with its tickets. Any rejected ticket rolls back the whole order.
func (s *Store) CreateOrder(ctx context.Context, scope model.Scope, in *model.OrderInput) (*model.Order, []model.Ticket, error) {
	order := model.Order{UserID: scope.UserID, CreatedAt: time.Now().UTC()}
	if scope.IsAdmin {
		if in.User != nil {
			order.UserID = *in.User
		}
		if in.CreatedAt != nil {
			order.CreatedAt = in.CreatedAt.UTC()
		}
	}

	var tickets []model.Ticket
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		errs := &apperror.ValidationError{}
		if err := requireRow(tx, &model.User{}, order.UserID, "user", errs); err != nil {
			return err
		}
		if !errs.Empty() {
			return errs
		}
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return err
		}
		for i, item := range in.Tickets {
			ticket := model.Ticket{
				Cargo:     *item.Cargo,
				Seat:      *item.Seat,
				JourneyID: *item.Journey,
				OrderID:   order.ID,
			}
			if err := placeTicket(tx, &ticket, fmt.Sprintf("tickets[%d].", i)); err != nil {
				return err
			}
			tickets = append(tickets, ticket)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &order, tickets, nil
}

// UpdateOrder lets administrators move an order to another user or change its
// timestamp. For regular users the order is returned unchanged.
func (s *Store) UpdateOrder(ctx context.Context, scope model.Scope, id uint, in *model.OrderInput) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := scopeOrders(tx, scope).First(&order, id).Error; err != nil {
			return apperror.FromLookup(err)
		}
		if !scope.IsAdmin {
			return nil
		}
		if in.User != nil {
			errs := &apperror.ValidationError{}
			if err := requireRow(tx, &model.User{}, *in.User, "user", errs); err != nil {
				return err
			}
			if !errs.Empty() {
				return errs
			}
			order.UserID = *in.User
		}
		if in.CreatedAt != nil {
			order.CreatedAt = in.CreatedAt.UTC()
		}
		return tx.Omit(clause.Associations).Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder removes the order and its tickets. It returns the journeys that lost tickets.
func (s *Store) DeleteOrder(ctx context.Context, scope model.Scope, id uint) ([]uint, error) {
	var journeys []uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := scopeOrders(tx, scope).First(&order, id).Error; err != nil {
			return apperror.FromLookup(err)
		}
		if err := tx.Model(&model.Ticket{}).Where("order_id = ?", order.ID).Distinct().Pluck("journey_id", &journeys).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&model.Ticket{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Order{}, order.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return journeys, nil
}
