package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"train_station/apperror"
	"train_station/constants"
	"train_station/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, apperror.FromLookup(err)
	}
	return &user, nil
}

// GetUserByEmail matches case-insensitively. A miss is ErrNotFound.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, apperror.FromLookup(err)
	}
	return &user, nil
}

// CreateUser stores user with an already hashed password.
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperror.Field("email", constants.EMAIL_TAKEN)
		}
		return tx.Create(user).Error
	})
	if apperror.IsUniqueViolation(err) {
		return apperror.Field("email", constants.EMAIL_TAKEN)
	}
	return err
}

// UpdateUser applies the profile change. passwordHash is empty when the password is unchanged.
func (s *Store) UpdateUser(ctx context.Context, id uint, in *model.UpdateUserInput, passwordHash string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return apperror.FromLookup(err)
		}
		if in.FirstName != nil {
			user.FirstName = *in.FirstName
		}
		if in.LastName != nil {
			user.LastName = *in.LastName
		}
		if passwordHash != "" {
			user.Password = passwordHash
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureSuperuser creates or promotes the administrator account.
func (s *Store) EnsureSuperuser(ctx context.Context, email, passwordHash string) (*model.User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user model.User
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("email = ?", email).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = model.User{Email: email, Password: passwordHash, IsStaff: true, IsActive: true}
			created = true
			return tx.Create(&user).Error
		case err != nil:
			return err
		}
		user.IsStaff = true
		user.IsActive = true
		if passwordHash != "" {
			user.Password = passwordHash
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &user, created, nil
}

func (s *Store) BlacklistToken(ctx context.Context, jti string, userID uint, expiresAt time.Time) error {
	entry := model.TokenBlacklist{JTI: jti, UserID: userID, ExpiresAt: expiresAt.UTC()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "jti"}}, DoNothing: true}).
		Create(&entry).Error
}

func (s *Store) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.TokenBlacklist{}).Where("jti = ?", jti).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// PurgeExpiredBlacklist drops entries whose token could no longer be presented.
func (s *Store) PurgeExpiredBlacklist(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at < ?", now.UTC()).Delete(&model.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
