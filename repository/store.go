package repository

import (
	"strings"

	"train_station/apperror"
	"train_station/constants"
	"train_station/model"
	"train_station/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the data access layer over one gorm connection.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// lockForUpdate adds SELECT ... FOR UPDATE where the dialect has it. SQLite
// serialises writers at the database level instead.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// listPage counts base (when paging) and loads the requested page into dest.
// finish adds preloads and ordering after the count.
func listPage[T any](base *gorm.DB, p model.Pagination, finish func(*gorm.DB) *gorm.DB, dest *[]T) (int64, error) {
	var total int64
	query := base
	if p.Enabled() {
		if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			return 0, err
		}
		p = p.Normalized()
		query = utils.ApplyPagination(base, p.Limit, p.Page)
	}
	if finish != nil {
		query = finish(query)
	}
	if err := query.Find(dest).Error; err != nil {
		return 0, err
	}
	if !p.Enabled() {
		total = int64(len(*dest))
	}
	return total, nil
}

// requireRow reports a field error when id does not resolve to a row of m.
func requireRow(tx *gorm.DB, m any, id uint, field string, errs *apperror.ValidationError) error {
	var count int64
	if err := tx.Model(m).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		errs.Add(field, constants.InvalidPk(id))
	}
	return nil
}

func deleteByID(tx *gorm.DB, m any, id uint) error {
	res := tx.Delete(m, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func likeLower(v string) string {
	return "%" + strings.ToLower(strings.TrimSpace(v)) + "%"
}
