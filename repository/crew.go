package repository

import (
	"context"

	"train_station/apperror"
	"train_station/model"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func (s *Store) ListCrews(ctx context.Context, filter model.FilterCrew) ([]model.Crew, int64, error) {
	base := s.db.WithContext(ctx).Model(&model.Crew{})
	if filter.FirstName != "" {
		base = base.Where("LOWER(first_name) LIKE ?", likeLower(filter.FirstName))
	}
	if filter.LastName != "" {
		base = base.Where("LOWER(last_name) LIKE ?", likeLower(filter.LastName))
	}
	var crews []model.Crew
	total, err := listPage(base, filter.Pagination, func(q *gorm.DB) *gorm.DB { return q.Order("id") }, &crews)
	return crews, total, err
}

func (s *Store) GetCrew(ctx context.Context, id uint) (*model.Crew, error) {
	var crew model.Crew
	if err := s.db.WithContext(ctx).First(&crew, id).Error; err != nil {
		return nil, apperror.FromLookup(err)
	}
	return &crew, nil
}

func (s *Store) CreateCrew(ctx context.Context, in *model.CrewInput) (*model.Crew, error) {
	var crew model.Crew
	if err := copier.CopyWithOption(&crew, in, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&crew).Error; err != nil {
		return nil, err
	}
	return &crew, nil
}

func (s *Store) UpdateCrew(ctx context.Context, id uint, in *model.CrewInput) (*model.Crew, error) {
	var crew model.Crew
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&crew, id).Error; err != nil {
			return apperror.FromLookup(err)
		}
		if err := copier.CopyWithOption(&crew, in, copier.Option{IgnoreEmpty: true}); err != nil {
			return err
		}
		return tx.Save(&crew).Error
	})
	if err != nil {
		return nil, err
	}
	return &crew, nil
}

func (s *Store) DeleteCrew(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &model.Crew{}, id)
}
