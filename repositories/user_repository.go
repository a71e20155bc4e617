package repositories

import (
	"strings"

	"github.com/mvera-dev/backoffice-api/models"
	"gorm.io/gorm"
)

// UserRepository centralizes operator account lookups
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository backed by db
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Find returns a user by id or gorm.ErrRecordNotFound
func (r *UserRepository) Find(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns a user by email or gorm.ErrRecordNotFound
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("LOWER(email) = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create persists a new user
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Count returns the number of non-deleted users
func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
