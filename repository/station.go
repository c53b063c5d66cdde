package repository

import (
	"context"

	"train_station/apperror"
	"train_station/model"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func (s *Store) ListStations(ctx context.Context, p model.Pagination, name string) ([]model.Station, int64, error) {
	base := s.db.WithContext(ctx).Model(&model.Station{})
	if name != "" {
		base = base.Where("LOWER(name) LIKE ?", likeLower(name))
	}
	var stations []model.Station
	total, err := listPage(base, p, func(q *gorm.DB) *gorm.DB { return q.Order("id") }, &stations)
	return stations, total, err
}

func (s *Store) GetStation(ctx context.Context, id uint) (*model.Station, error) {
	var station model.Station
	if err := s.db.WithContext(ctx).First(&station, id).Error; err != nil {
		return nil, apperror.FromLookup(err)
	}
	return &station, nil
}

func (s *Store) CreateStation(ctx context.Context, in *model.StationInput) (*model.Station, error) {
	var station model.Station
	if err := copier.CopyWithOption(&station, in, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&station).Error; err != nil {
		return nil, err
	}
	return &station, nil
}

func (s *Store) UpdateStation(ctx context.Context, id uint, in *model.StationInput) (*model.Station, error) {
	var station model.Station
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&station, id).Error; err != nil {
			return apperror.FromLookup(err)
		}
		if err := copier.CopyWithOption(&station, in, copier.Option{IgnoreEmpty: true}); err != nil {
			return err
		}
		return tx.Save(&station).Error
	})
	if err != nil {
		return nil, err
	}
	return &station, nil
}

// DeleteStation removes the station; routes starting or ending there cascade.
func (s *Store) DeleteStation(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &model.Station{}, id)
}
