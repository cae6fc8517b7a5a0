package repositories

import (
	"errors"
	"time"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) (*models.User, error)
	Delete(db *gorm.DB, id string) error
	SetNotificationLastViewed(db *gorm.DB, userID string, viewedAt time.Time) error
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	err := db.Create(user).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUserAlreadyExists
	}
	return err
}

func (r *UserRepositoryImpl) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if len(fields) > 0 {
		if err := db.Model(&user).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Delete(&models.User{}, "id = ?", id).Error
}

func (r *UserRepositoryImpl) SetNotificationLastViewed(db *gorm.DB, userID string, viewedAt time.Time) error {
	result := db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("notification_last_viewed_at", viewedAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
