package repository

import (
	"agrichain/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByUserID(userID string) (*model.User, error)
	Exists(tx *gorm.DB, userID string) (bool, error)
	UpdatePassword(userID string, hashedPassword string) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepo) FindByUserID(userID string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists runs inside the caller's transaction so buyer checks see the
// same snapshot as the rest of a transfer.
func (r *userRepo) Exists(tx *gorm.DB, userID string) (bool, error) {
	var count int64
	if err := tx.Model(&model.User{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) UpdatePassword(userID string, hashedPassword string) error {
	return r.db.Model(&model.User{}).Where("user_id = ?", userID).Update("password", hashedPassword).Error
}
