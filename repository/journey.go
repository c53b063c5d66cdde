package repository

import (
	"context"
	"time"

	"train_station/apperror"
	"train_station/constants"
	"train_station/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func preloadJourney(q *gorm.DB) *gorm.DB {
	return q.Preload("Route.Source").Preload("Route.Destination").Preload("Train.TrainType")
}

func (s *Store) ListJourneys(ctx context.Context, filter model.FilterJourney) ([]model.Journey, map[uint]int64, int64, error) {
	db := s.db.WithContext(ctx)
	base := db.Model(&model.Journey{})
	if filter.Route != 0 {
		base = base.Where("route_id = ?", filter.Route)
	}
	if filter.Train != 0 {
		base = base.Where("train_id = ?", filter.Train)
	}
	if filter.Date != "" {
		day, err := time.Parse("2006-01-02", filter.Date)
		if err != nil {
			return nil, nil, 0, apperror.Field("date", "Date has wrong format. Use YYYY-MM-DD.")
		}
		base = base.Where("departure_time >= ? AND departure_time < ?", day, day.AddDate(0, 0, 1))
	}
	if filter.Source != "" {
		base = base.Where("route_id IN (?)",
			db.Model(&model.Route{}).Select("id").Where("source_id IN (?)", stationIDsByName(db, filter.Source)))
	}
	if filter.Destination != "" {
		base = base.Where("route_id IN (?)",
			db.Model(&model.Route{}).Select("id").Where("destination_id IN (?)", stationIDsByName(db, filter.Destination)))
	}

	var journeys []model.Journey
	total, err := listPage(base, filter.Pagination, func(q *gorm.DB) *gorm.DB {
		return preloadJourney(q).Order("departure_time, id")
	}, &journeys)
	if err != nil {
		return nil, nil, 0, err
	}

	ids := make([]uint, 0, len(journeys))
	for _, j := range journeys {
		ids = append(ids, j.ID)
	}
	sold, err := s.soldCounts(db, ids)
	if err != nil {
		return nil, nil, 0, err
	}
	return journeys, sold, total, nil
}

func (s *Store) soldCounts(db *gorm.DB, journeyIDs []uint) (map[uint]int64, error) {
	sold := make(map[uint]int64, len(journeyIDs))
	if len(journeyIDs) == 0 {
		return sold, nil
	}
	var rows []struct {
		JourneyID uint
		Sold      int64
	}
	if err := db.Model(&model.Ticket{}).
		Select("journey_id, COUNT(*) AS sold").
		Where("journey_id IN ?", journeyIDs).
		Group("journey_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		sold[r.JourneyID] = r.Sold
	}
	return sold, nil
}

func (s *Store) GetJourney(ctx context.Context, id uint) (*model.Journey, error) {
	var journey model.Journey
	if err := preloadJourney(s.db.WithContext(ctx)).First(&journey, id).Error; err != nil {
		return nil, apperror.FromLookup(err)
	}
	return &journey, nil
}

func (s *Store) CreateJourney(ctx context.Context, in *model.JourneyInput) (*model.Journey, error) {
	journey := model.Journey{
		RouteID:       *in.Route,
		TrainID:       *in.Train,
		DepartureTime: in.DepartureTime.UTC(),
		ArrivalTime:   in.ArrivalTime.UTC(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkJourney(tx, &journey); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&journey).Error
	})
	if err != nil {
		return nil, err
	}
	return &journey, nil
}

func (s *Store) UpdateJourney(ctx context.Context, id uint, in *model.JourneyInput) (*model.Journey, error) {
	var journey model.Journey
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&journey, id).Error; err != nil {
			return apperror.FromLookup(err)
		}
		if in.Route != nil {
			journey.RouteID = *in.Route
		}
		if in.Train != nil {
			journey.TrainID = *in.Train
		}
		if in.DepartureTime != nil {
			journey.DepartureTime = in.DepartureTime.UTC()
		}
		if in.ArrivalTime != nil {
			journey.ArrivalTime = in.ArrivalTime.UTC()
		}
		if err := checkJourney(tx, &journey); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&journey).Error
	})
	if err != nil {
		return nil, err
	}
	return &journey, nil
}

func (s *Store) DeleteJourney(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &model.Journey{}, id)
}

// JourneySeats lists the sold places of a journey against the train capacity.
func (s *Store) JourneySeats(ctx context.Context, id uint) (*model.JourneySeats, error) {
	db := s.db.WithContext(ctx)
	var journey model.Journey
	if err := db.Preload("Train").First(&journey, id).Error; err != nil {
		return nil, apperror.FromLookup(err)
	}
	taken := []model.SeatRef{}
	if err := db.Model(&model.Ticket{}).
		Select("cargo, seat").
		Where("journey_id = ?", id).
		Order("seat").
		Scan(&taken).Error; err != nil {
		return nil, err
	}
	available := journey.Train.Capacity() - len(taken)
	if available < 0 {
		available = 0
	}
	return &model.JourneySeats{
		Journey:   journey.ID,
		Capacity:  journey.Train.Capacity(),
		Available: available,
		Taken:     taken,
	}, nil
}

// DepartedJourneys returns the journeys whose departure falls in (from, to].
func (s *Store) DepartedJourneys(ctx context.Context, from, to time.Time) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&model.Journey{}).
		Where("departure_time > ? AND departure_time <= ?", from.UTC(), to.UTC()).
		Order("departure_time").
		Pluck("id", &ids).Error
	return ids, err
}

func checkJourney(tx *gorm.DB, journey *model.Journey) error {
	errs := &apperror.ValidationError{}
	if err := requireRow(tx, &model.Route{}, journey.RouteID, "route", errs); err != nil {
		return err
	}
	if err := requireRow(tx, &model.Train{}, journey.TrainID, "train", errs); err != nil {
		return err
	}
	if !journey.ArrivalTime.After(journey.DepartureTime) {
		errs.Add("arrival_time", constants.ARRIVAL_BEFORE_DEPARTURE)
	}
	if !errs.Empty() {
		return errs
	}
	return nil
}
