package repository

import (
	"context"

	"train_station/apperror"
	"train_station/model"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func (s *Store) ListTrainTypes(ctx context.Context, p model.Pagination) ([]model.TrainType, int64, error) {
	var types []model.TrainType
	total, err := listPage(s.db.WithContext(ctx).Model(&model.TrainType{}), p,
		func(q *gorm.DB) *gorm.DB { return q.Order("id") }, &types)
	return types, total, err
}

func (s *Store) GetTrainType(ctx context.Context, id uint) (*model.TrainType, error) {
	var trainType model.TrainType
	if err := s.db.WithContext(ctx).First(&trainType, id).Error; err != nil {
		return nil, apperror.FromLookup(err)
	}
	return &trainType, nil
}

func (s *Store) CreateTrainType(ctx context.Context, in *model.TrainTypeInput) (*model.TrainType, error) {
	var trainType model.TrainType
	if err := copier.CopyWithOption(&trainType, in, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&trainType).Error; err != nil {
		return nil, err
	}
	return &trainType, nil
}

func (s *Store) UpdateTrainType(ctx context.Context, id uint, in *model.TrainTypeInput) (*model.TrainType, error) {
	var trainType model.TrainType
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&trainType, id).Error; err != nil {
			return apperror.FromLookup(err)
		}
		if err := copier.CopyWithOption(&trainType, in, copier.Option{IgnoreEmpty: true}); err != nil {
			return err
		}
		return tx.Save(&trainType).Error
	})
	if err != nil {
		return nil, err
	}
	return &trainType, nil
}

func (s *Store) DeleteTrainType(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &model.TrainType{}, id)
}

// FindOrCreateTrainType is used by seeding.
func (s *Store) FindOrCreateTrainType(ctx context.Context, name string) (*model.TrainType, error) {
	trainType := model.TrainType{Name: name}
	if err := s.db.WithContext(ctx).Where(model.TrainType{Name: name}).FirstOrCreate(&trainType).Error; err != nil {
		return nil, err
	}
	return &trainType, nil
}
