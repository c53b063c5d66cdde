package repository

import (
	"context"

	"train_station/apperror"
	"train_station/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func preloadRoute(q *gorm.DB) *gorm.DB {
	return q.Preload("Source").Preload("Destination")
}

func stationIDsByName(db *gorm.DB, name string) *gorm.DB {
	return db.Model(&model.Station{}).Select("id").Where("LOWER(name) LIKE ?", likeLower(name))
}

func (s *Store) ListRoutes(ctx context.Context, filter model.FilterRoute) ([]model.Route, int64, error) {
	db := s.db.WithContext(ctx)
	base := db.Model(&model.Route{})
	if filter.Source != "" {
		base = base.Where("source_id IN (?)", stationIDsByName(db, filter.Source))
	}
	if filter.Destination != "" {
		base = base.Where("destination_id IN (?)", stationIDsByName(db, filter.Destination))
	}
	var routes []model.Route
	total, err := listPage(base, filter.Pagination, func(q *gorm.DB) *gorm.DB {
		return preloadRoute(q).Order("id")
	}, &routes)
	return routes, total, err
}

func (s *Store) GetRoute(ctx context.Context, id uint) (*model.Route, error) {
	var route model.Route
	if err := preloadRoute(s.db.WithContext(ctx)).First(&route, id).Error; err != nil {
		return nil, apperror.FromLookup(err)
	}
	return &route, nil
}

func (s *Store) CreateRoute(ctx context.Context, in *model.RouteInput) (*model.Route, error) {
	route := model.Route{SourceID: *in.Source, DestinationID: *in.Destination}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkRouteStations(tx, &route); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&route).Error; err != nil {
			return err
		}
		return preloadRoute(tx).First(&route, route.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (s *Store) UpdateRoute(ctx context.Context, id uint, in *model.RouteInput) (*model.Route, error) {
	var route model.Route
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&route, id).Error; err != nil {
			return apperror.FromLookup(err)
		}
		if in.Source != nil {
			route.SourceID = *in.Source
		}
		if in.Destination != nil {
			route.DestinationID = *in.Destination
		}
		if err := checkRouteStations(tx, &route); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(&route).Error; err != nil {
			return err
		}
		return preloadRoute(tx).First(&route, route.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &route, nil
}

// DeleteRoute removes the route and, through the foreign keys, its journeys and their tickets.
func (s *Store) DeleteRoute(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &model.Route{}, id)
}

func checkRouteStations(tx *gorm.DB, route *model.Route) error {
	errs := &apperror.ValidationError{}
	if err := requireRow(tx, &model.Station{}, route.SourceID, "source", errs); err != nil {
		return err
	}
	if err := requireRow(tx, &model.Station{}, route.DestinationID, "destination", errs); err != nil {
		return err
	}
	if !errs.Empty() {
		return errs
	}
	return nil
}
