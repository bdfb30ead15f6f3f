package store

import (
	"errors"
	"fmt"

	"github.com/jobdeck-dev/jobdeck/internal/models"
	"gorm.io/gorm"
)

// UserStore persists user accounts and their preferences.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user. The caller is expected to have checked for
// identity conflicts first; the check-then-insert pair is not transactional,
// so a concurrent registration with the same identity can still hit the
// unique index and surface here as an error.
func (s *UserStore) Create(user *models.User) error {
	if err := s.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByIdentity looks up a user matching either the username or the email.
// Returns ErrNotFound when neither matches.
func (s *UserStore) FindByIdentity(username, email string) (models.User, error) {
	var user models.User

	err := s.db.Where("username = ? OR email = ?", username, email).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func (s *UserStore) FindByUsername(username string) (models.User, error) {
	var user models.User

	err := s.db.Where("username = ?", username).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func (s *UserStore) FindByID(id uint) (models.User, error) {
	var user models.User

	err := s.db.First(&user, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdatePreferences overwrites the three preference fields unconditionally.
func (s *UserStore) UpdatePreferences(userID uint, role, location string, emailAlerts bool) error {
	err := s.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"preferred_role":     role,
		"preferred_location": location,
		"email_alerts":       emailAlerts,
	}).Error

	if err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}

	return nil
}
