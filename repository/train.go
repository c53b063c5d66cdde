package repository

import (
	"context"

	"train_station/apperror"
	"train_station/model"

	"gorm.io/gorm"
)

func preloadTrain(q *gorm.DB) *gorm.DB {
	return q.Preload("TrainType")
}

func (s *Store) ListTrains(ctx context.Context, p model.Pagination) ([]model.Train, int64, error) {
	var trains []model.Train
	total, err := listPage(s.db.WithContext(ctx).Model(&model.Train{}), p, func(q *gorm.DB) *gorm.DB {
		return preloadTrain(q).Order("id")
	}, &trains)
	return trains, total, err
}

func (s *Store) GetTrain(ctx context.Context, id uint) (*model.Train, error) {
	var train model.Train
	if err := preloadTrain(s.db.WithContext(ctx)).First(&train, id).Error; err != nil {
		return nil, apperror.FromLookup(err)
	}
	return &train, nil
}

// CreateTrain stores the train with an already uploaded image URL, if any.
func (s *Store) CreateTrain(ctx context.Context, in *model.TrainInput, image *string) (*model.Train, error) {
	train := model.Train{
		Name:          *in.Name,
		CargoNum:      *in.CargoNum,
		PlacesInCargo: *in.PlacesInCargo,
		TrainTypeID:   *in.TrainType,
		Image:         image,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		errs := &apperror.ValidationError{}
		if err := requireRow(tx, &model.TrainType{}, train.TrainTypeID, "train_type", errs); err != nil {
			return err
		}
		if !errs.Empty() {
			return errs
		}
		if err := tx.Omit("TrainType").Create(&train).Error; err != nil {
			return err
		}
		return preloadTrain(tx).First(&train, train.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &train, nil
}

// UpdateTrain applies the non-nil fields of in; a nil image keeps the current one.
func (s *Store) UpdateTrain(ctx context.Context, id uint, in *model.TrainInput, image *string) (*model.Train, error) {
	var train model.Train
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&train, id).Error; err != nil {
			return apperror.FromLookup(err)
		}
		if in.Name != nil {
			train.Name = *in.Name
		}
		if in.CargoNum != nil {
			train.CargoNum = *in.CargoNum
		}
		if in.PlacesInCargo != nil {
			train.PlacesInCargo = *in.PlacesInCargo
		}
		if in.TrainType != nil {
			errs := &apperror.ValidationError{}
			if err := requireRow(tx, &model.TrainType{}, *in.TrainType, "train_type", errs); err != nil {
				return err
			}
			if !errs.Empty() {
				return errs
			}
			train.TrainTypeID = *in.TrainType
		}
		if image != nil {
			train.Image = image
		}
		if err := tx.Omit("TrainType").Save(&train).Error; err != nil {
			return err
		}
		return preloadTrain(tx).First(&train, train.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &train, nil
}

func (s *Store) DeleteTrain(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &model.Train{}, id)
}
